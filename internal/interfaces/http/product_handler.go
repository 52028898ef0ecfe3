package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear productos (lote)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CreateProductRequest  true  "Productos"
// @Success      201   {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in []dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "productos creados", out)
}

// Stats godoc
// @Summary      Estadísticas del catálogo (admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ProductStatsResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/products/stats [get]
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "estadísticas de productos", out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "producto", out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(10)
// @Param        name      query  string  false  "Subcadena del nombre"
// @Param        category  query  string  false  "Subcadena de la categoría"
// @Param        minPrice  query  number  false  "Precio mínimo"
// @Param        maxPrice  query  number  false  "Precio máximo"
// @Param        price     query  number  false  "Precio exacto"
// @Param        status    query  string  false  "ACTIVE, ARCHIVED o DELETED"
// @Param        sort      query  string  false  "Campo de orden"
// @Param        order     query  string  false  "asc o desc"
// @Param        summary   query  bool    false  "Proyección resumida"
// @Success      200       {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Queries())
	if err != nil {
		return err
	}
	return respondPage(c, "productos", out.Items, out.Pagination)
}

// Update godoc
// @Summary      Actualizar producto (no cambia estado ni cantidad)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "producto actualizado", out)
}

// SetStatus godoc
// @Summary      Cambiar estado (ACTIVE/ARCHIVED)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.UpdateStatusRequest  true  "status, note"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/status [put]
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.SetStatus(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "estado actualizado", out)
}

// AdjustQuantity godoc
// @Summary      Ajustar cantidad disponible
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "mode (set|adjust), value, note"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/quantity [patch]
func (h *ProductHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.AdjustQuantity(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "cantidad actualizada", out)
}

// Delete godoc
// @Summary      Borrado lógico (estado DELETED)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.DeleteProductRequest  true  "note"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteProductRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "producto eliminado", out)
}

// History godoc
// @Summary      Historial de cambios de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del producto"
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Límite"
// @Param        startDate  query  string  false  "Desde (inclusive)"
// @Param        endDate    query  string  false  "Hasta (inclusive)"
// @Param        date       query  string  false  "Día completo UTC (YYYY-MM-DD)"
// @Success      200        {object}  dto.Envelope{data=[]dto.ProductHistoryResponse}
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/history [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	var in dto.HistoryQuery
	if err := c.QueryParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.History(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respondPage(c, "historial", out.Items, out.Pagination)
}
