package catalog

import (
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Category:          p.Category,
		AvailableQuantity: p.AvailableQuantity,
		ImageURL:          p.ImageURL,
		Status:            string(p.Status),
		CreatedBy:         toManagerRef(p.CreatedBy, p.Creator),
		LastUpdatedBy:     toManagerRef(p.LastUpdatedBy, p.LastUpdater),
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		out.CreatedAt = &t
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// toManagerRef usa la referencia poblada; si no se resolvió devuelve solo el id.
func toManagerRef(id string, ref *entity.ManagerRef) *dto.ManagerRefResponse {
	if ref != nil {
		return &dto.ManagerRefResponse{ID: ref.ID, Firstname: ref.Firstname, Lastname: ref.Lastname, Email: ref.Email}
	}
	if id == "" {
		return nil
	}
	return &dto.ManagerRefResponse{ID: id}
}

func toHistoryResponse(h *entity.ProductChangeHistory) dto.ProductHistoryResponse {
	return dto.ProductHistoryResponse{
		ID:            h.ID,
		ProductID:     h.ProductID,
		PreviousState: *toProductResponse(&h.PreviousState),
		NewState:      *toProductResponse(&h.NewState),
		ChangeType:    string(h.ChangeType),
		Notes:         h.Notes,
		UpdatedBy:     toManagerRef(h.UpdatedBy, h.UpdatedByRef),
		CreatedAt:     h.CreatedAt,
		RecordedAt:    h.RecordedAt,
	}
}

func toPagination[T any](p *repository.Page[T]) dto.PaginationResponse {
	return dto.PaginationResponse{
		TotalDocs:   p.TotalMatching,
		TotalPages:  p.TotalPages,
		CurrentPage: p.Page,
		Limit:       p.Limit,
		HasNextPage: p.HasNextPage(),
		HasPrevPage: p.HasPrevPage(),
	}
}

func toStatsResponse(s *entity.ProductStats) *dto.ProductStatsResponse {
	out := &dto.ProductStatsResponse{
		TotalProducts:  s.TotalProducts,
		AvgPrice:       s.AvgPrice.Round(2),
		MinPrice:       s.MinPrice,
		MaxPrice:       s.MaxPrice,
		TotalInventory: s.TotalInventory,
		CategoryCounts: make([]dto.CategoryStatsResponse, 0, len(s.Categories)),
	}
	for _, c := range s.Categories {
		out.CategoryCounts = append(out.CategoryCounts, dto.CategoryStatsResponse{
			Category:       c.Category,
			Count:          c.Count,
			AvgPrice:       c.AvgPrice.Round(2),
			TotalInventory: c.TotalInventory,
		})
	}
	return out
}
