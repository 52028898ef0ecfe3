package dto

import "time"

// HistoryQuery filtros de GET /products/:id/history. Fechas en RFC3339 o YYYY-MM-DD;
// date cubre el día completo (UTC) y tiene prioridad sobre startDate/endDate.
type HistoryQuery struct {
	PageRequest
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Date      string `query:"date"`
}

// ProductHistoryResponse registro de auditoría con snapshots completos.
type ProductHistoryResponse struct {
	ID            string              `json:"id"`
	ProductID     string              `json:"productId"`
	PreviousState ProductResponse     `json:"previousState"`
	NewState      ProductResponse     `json:"newState"`
	ChangeType    string              `json:"changeType"`
	Notes         string              `json:"notes,omitempty"`
	UpdatedBy     *ManagerRefResponse `json:"updatedBy"`
	CreatedAt     time.Time           `json:"createdAt"`
	RecordedAt    time.Time           `json:"recordedAt"`
}

// ProductHistoryListResponse página de historial.
type ProductHistoryListResponse struct {
	Items      []ProductHistoryResponse `json:"items"`
	Pagination PaginationResponse       `json:"pagination"`
}
