package dto

import "github.com/jhoicas/catalog-api/internal/domain"

// PageRequest paginación para listados. Un limit mayor que repository.MaxLimit se recorta, no se rechaza.
type PageRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1"`
}

// PaginationResponse metadatos de página en respuestas.
type PaginationResponse struct {
	TotalDocs   int64 `json:"totalDocs"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Envelope cuerpo de respuesta exitosa.
type Envelope struct {
	Message    string              `json:"message"`
	Data       any                 `json:"data"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Data siempre es un objeto vacío; Stack solo fuera de producción.
type ErrorResponse struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Data    struct{}            `json:"data"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Stack   string              `json:"stack,omitempty"`
}
