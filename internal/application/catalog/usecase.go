package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/validation"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo. Toda mutación de un producto existente pasa por
// el flujo auditado (ver update.go).
type UseCase struct {
	productRepo repository.ProductRepository
	historyRepo repository.ProductHistoryRepository
	txRunner    TxRunner
	validate    *validation.Validator
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	historyRepo repository.ProductHistoryRepository,
	txRunner TxRunner,
	validate *validation.Validator,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		historyRepo: historyRepo,
		txRunner:    txRunner,
		validate:    validate,
		now:         time.Now,
	}
}

// Create valida y crea un lote de productos en estado ACTIVE a nombre del actor.
func (uc *UseCase) Create(ctx context.Context, actor Actor, in []dto.CreateProductRequest) ([]dto.ProductResponse, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("products", "se requiere al menos un producto")
	}
	verr := &domain.ValidationError{}
	for i, item := range in {
		if err := uc.validate.Struct(item); err != nil {
			var fields *domain.ValidationError
			if !errors.As(err, &fields) {
				return nil, err
			}
			for _, f := range fields.Fields {
				verr.Add(fmt.Sprintf("[%d].%s", i, f.Field), f.Message)
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	products := make([]*entity.Product, 0, len(in))
	for _, item := range in {
		p := &entity.Product{
			Name:              item.Name,
			Description:       item.Description,
			Price:             *item.Price,
			Category:          item.Category,
			AvailableQuantity: *item.AvailableQuantity,
			ImageURL:          item.ImageURL,
			Status:            entity.ProductStatusActive,
			CreatedBy:         actor.ID,
			LastUpdatedBy:     actor.ID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		p.Normalize()
		if err := uc.validateProduct(p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := uc.productRepo.CreateMany(ctx, products); err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto poblado. Los productos DELETED siguen siendo legibles por id.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List consulta productos a partir de los query params (ver BuildProductQuery).
func (uc *UseCase) List(ctx context.Context, params map[string]string) (*dto.ProductListResponse, error) {
	filter, opts, err := BuildProductQuery(params)
	if err != nil {
		return nil, err
	}
	page, err := uc.productRepo.List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Pagination: toPagination(page)}, nil
}

// Stats agregados del catálogo. El acceso se restringe a admin en la ruta.
func (uc *UseCase) Stats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	stats, err := uc.productRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return toStatsResponse(stats), nil
}

// History página del historial de un producto, más reciente primero.
func (uc *UseCase) History(ctx context.Context, productID string, in dto.HistoryQuery) (*dto.ProductHistoryListResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	filter, err := buildHistoryFilter(product.ID, in)
	if err != nil {
		return nil, err
	}
	opts := repository.PageOptions{
		Page:  in.Page,
		Limit: in.Limit,
		Sort: []repository.SortField{
			{Field: repository.HistoryFieldCreatedAt, Desc: true},
			{Field: repository.HistoryFieldRecordedAt, Desc: true},
		},
		Populate: []repository.Populate{{Path: repository.HistoryFieldUpdatedBy, Select: entity.ManagerRefFields}},
	}.Normalized()
	page, err := uc.historyRepo.List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductHistoryResponse, 0, len(page.Items))
	for _, h := range page.Items {
		items = append(items, toHistoryResponse(h))
	}
	return &dto.ProductHistoryListResponse{Items: items, Pagination: toPagination(page)}, nil
}

// buildHistoryFilter: startDate/endDate inclusivos; date cubre el día UTC completo y
// reemplaza a ambos. Una fecha sin hora en endDate incluye todo ese día.
func buildHistoryFilter(productID string, in dto.HistoryQuery) (repository.Filter, error) {
	filter := repository.Filter{}.Eq(repository.HistoryFieldProductID, productID)
	verr := &domain.ValidationError{}

	if in.Date != "" {
		day, dateOnly, err := parseDate(in.Date)
		if err != nil {
			verr.Add("date", "date debe tener formato YYYY-MM-DD o RFC3339")
			return nil, verr
		}
		if !dateOnly {
			day = day.Truncate(24 * time.Hour)
		}
		return filter.
			Gte(repository.HistoryFieldCreatedAt, day).
			Lte(repository.HistoryFieldCreatedAt, endOfDay(day)), nil
	}
	if in.StartDate != "" {
		start, _, err := parseDate(in.StartDate)
		if err != nil {
			verr.Add("startDate", "startDate debe tener formato YYYY-MM-DD o RFC3339")
		} else {
			filter = filter.Gte(repository.HistoryFieldCreatedAt, start)
		}
	}
	if in.EndDate != "" {
		end, dateOnly, err := parseDate(in.EndDate)
		if err != nil {
			verr.Add("endDate", "endDate debe tener formato YYYY-MM-DD o RFC3339")
		} else {
			if dateOnly {
				end = endOfDay(end)
			}
			filter = filter.Lte(repository.HistoryFieldCreatedAt, end)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return filter, nil
}

func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d.UTC(), true, nil
	}
	t, err = cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}

func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Nanosecond)
}
