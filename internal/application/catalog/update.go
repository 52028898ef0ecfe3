package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// mutation describe un cambio auditado: cómo calcular el nuevo estado a partir del actual.
type mutation struct {
	changeType entity.ProductChangeType
	note       string
	apply      func(current *entity.Product) (*entity.Product, error)
}

// productRules reglas del producto completo; se re-ejecutan sobre el resultado de cada merge.
// El tope de availableQuantity es el de la columna INTEGER de postgres, igual para todos los almacenes.
type productRules struct {
	Name              string          `json:"name" validate:"required,min=2,max=100"`
	Description       string          `json:"description" validate:"required,min=10,max=500"`
	Price             decimal.Decimal `json:"price" validate:"gte=0"`
	Category          string          `json:"category" validate:"required"`
	AvailableQuantity int             `json:"availableQuantity" validate:"gte=0,max=2147483647"`
	ImageURL          string          `json:"imageUrl" validate:"omitempty,url"`
	Status            string          `json:"status" validate:"required,oneof=ACTIVE ARCHIVED DELETED"`
}

func (uc *UseCase) validateProduct(p *entity.Product) error {
	return uc.validate.Struct(productRules{
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Category:          p.Category,
		AvailableQuantity: p.AvailableQuantity,
		ImageURL:          p.ImageURL,
		Status:            string(p.Status),
	})
}

// Update actualización general. Rechaza status y availableQuantity (tienen endpoints propios).
func (uc *UseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	verr := &domain.ValidationError{}
	if in.Status != nil {
		verr.Add("status", "status solo se modifica con PUT /products/:id/status")
	}
	if in.AvailableQuantity != nil {
		verr.Add("availableQuantity", "availableQuantity solo se modifica con PATCH /products/:id/quantity")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	patch := entity.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("body", "no hay campos para actualizar")
	}
	return uc.run(ctx, actor, id, mutation{
		changeType: entity.ChangeTypeOther,
		note:       strings.TrimSpace(in.Note),
		apply: func(current *entity.Product) (*entity.Product, error) {
			return patch.ApplyTo(current), nil
		},
	})
}

// SetStatus transición ACTIVE <-> ARCHIVED con nota obligatoria. Se valida antes de tocar el almacén.
func (uc *UseCase) SetStatus(ctx context.Context, actor Actor, id string, in dto.UpdateStatusRequest) (*dto.ProductResponse, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	status, _ := entity.ParseProductStatus(in.Status)
	return uc.transition(ctx, actor, id, status, in.Note)
}

// Delete borrado lógico: estado DELETED, nota obligatoria.
func (uc *UseCase) Delete(ctx context.Context, actor Actor, id string, in dto.DeleteProductRequest) (*dto.ProductResponse, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	return uc.transition(ctx, actor, id, entity.ProductStatusDeleted, in.Note)
}

func (uc *UseCase) transition(ctx context.Context, actor Actor, id string, status entity.ProductStatus, note string) (*dto.ProductResponse, error) {
	return uc.run(ctx, actor, id, mutation{
		changeType: entity.ChangeTypeStatus,
		note:       note,
		apply: func(current *entity.Product) (*entity.Product, error) {
			if !current.Status.CanTransitionTo(status) {
				return nil, domain.ErrInvalidTransition
			}
			return entity.ProductPatch{Status: &status}.ApplyTo(current), nil
		},
	})
}

// AdjustQuantity set asigna la cantidad; adjust suma un delta con signo. El resultado nunca es negativo.
func (uc *UseCase) AdjustQuantity(ctx context.Context, actor Actor, id string, in dto.AdjustQuantityRequest) (*dto.ProductResponse, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Mode == dto.QuantityModeSet && *in.Value < 0 {
		return nil, domain.NewValidationError("value", "la cantidad no puede ser negativa")
	}
	return uc.run(ctx, actor, id, mutation{
		changeType: entity.ChangeTypeQuantity,
		note:       in.Note,
		apply: func(current *entity.Product) (*entity.Product, error) {
			qty := *in.Value
			if in.Mode == dto.QuantityModeAdjust {
				qty += current.AvailableQuantity
			}
			if qty < 0 {
				return nil, domain.NewValidationError("value", "el ajuste dejaría la cantidad en negativo")
			}
			return entity.ProductPatch{AvailableQuantity: &qty}.ApplyTo(current), nil
		},
	})
}

// run flujo auditado, en una sola transacción:
// leer actual -> autorizar -> merge y validar -> escribir -> insertar historial -> commit.
// Cualquier error aborta la transacción y se propaga sin cambios: sin historial parcial.
func (uc *UseCase) run(ctx context.Context, actor Actor, id string, m mutation) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		ctx context.Context,
		productRepo repository.ProductRepository,
		historyRepo repository.ProductHistoryRepository,
	) error {
		current, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrProductNotFound
		}
		if !current.CanBeModifiedBy(actor.ID, actor.Role) {
			return domain.ErrForbidden
		}

		next, err := m.apply(current)
		if err != nil {
			return err
		}
		if err := uc.validateProduct(next); err != nil {
			return err
		}
		now := uc.now().UTC()
		next.LastUpdatedBy = actor.ID
		next.UpdatedAt = now
		next.LastUpdater = nil

		written, err := productRepo.Update(ctx, next)
		if err != nil {
			return err
		}
		if written == nil {
			return domain.ErrProductNotFound
		}

		record := &entity.ProductChangeHistory{
			ProductID:     current.ID,
			PreviousState: *current.Clone(),
			NewState:      *written.Clone(),
			ChangeType:    m.changeType,
			Notes:         m.note,
			UpdatedBy:     actor.ID,
			CreatedAt:     current.CreatedAt,
			RecordedAt:    now,
		}
		if err := historyRepo.Create(ctx, record); err != nil {
			return err
		}
		updated = written
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}
