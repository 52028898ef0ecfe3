package catalog_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/validation"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
)

type fixture struct {
	ctx   context.Context
	store *memory.Store
	uc    *catalog.UseCase
	owner catalog.Actor
	other catalog.Actor
	admin catalog.Actor
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithTx(t, nil)
}

func newFixtureWithTx(t *testing.T, wrap func(catalog.TxRunner) catalog.TxRunner) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	var tx catalog.TxRunner = store.TxRunner()
	if wrap != nil {
		tx = wrap(tx)
	}
	f := &fixture{
		ctx:   ctx,
		store: store,
		uc:    catalog.NewUseCase(store.Products(), store.History(), tx, validation.New()),
	}
	f.owner = f.addManager(t, "owner@test.com", entity.RoleManager)
	f.other = f.addManager(t, "other@test.com", entity.RoleManager)
	f.admin = f.addManager(t, "admin@test.com", entity.RoleAdmin)
	return f
}

func (f *fixture) addManager(t *testing.T, email, role string) catalog.Actor {
	t.Helper()
	m := &entity.Manager{
		Firstname:    "Ana",
		Lastname:     "Pérez",
		Email:        email,
		PhoneNumber:  "3001234567",
		PasswordHash: "hash-secreto",
		Role:         role,
		Status:       entity.ManagerStatusActive,
	}
	require.NoError(t, f.store.Managers().Create(f.ctx, m))
	return catalog.Actor{ID: m.ID, Role: role}
}

func productInput(name string, price int64, qty int) dto.CreateProductRequest {
	p := decimal.NewFromInt(price)
	return dto.CreateProductRequest{
		Name:              name,
		Description:       "producto de prueba " + name,
		Price:             &p,
		Category:          "tools",
		AvailableQuantity: &qty,
	}
}

func (f *fixture) create(t *testing.T, in ...dto.CreateProductRequest) []dto.ProductResponse {
	t.Helper()
	out, err := f.uc.Create(f.ctx, f.owner, in)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	return out
}

func (f *fixture) history(t *testing.T, productID string) []*entity.ProductChangeHistory {
	t.Helper()
	page, err := f.store.History().List(f.ctx,
		repository.Filter{}.Eq(repository.HistoryFieldProductID, productID),
		repository.PageOptions{Limit: repository.MaxLimit})
	require.NoError(t, err)
	return page.Items
}

func (f *fixture) allHistory(t *testing.T) int64 {
	t.Helper()
	page, err := f.store.History().List(f.ctx, nil, repository.PageOptions{})
	require.NoError(t, err)
	return page.TotalMatching
}

// ─── Create / Get ─────────────────────────────────────────────────────────────

func TestCreate_NormalizaYAsignaCreador(t *testing.T) {
	f := newFixture(t)
	in := productInput("  Widget ", 10, 5)
	in.Category = " TOOLS"

	out := f.create(t, in)

	p := out[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "widget", p.Name)
	assert.Equal(t, "tools", p.Category)
	assert.Equal(t, "ACTIVE", p.Status)
	assert.Equal(t, f.owner.ID, p.CreatedBy.ID)
	assert.Equal(t, f.owner.ID, p.LastUpdatedBy.ID)
}

func TestCreate_ValidaCadaElemento(t *testing.T) {
	f := newFixture(t)
	bad := productInput("x", -1, 1)
	bad.Description = "corta"

	_, err := f.uc.Create(f.ctx, f.owner, []dto.CreateProductRequest{productInput("widget", 1, 1), bad})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "[1].name")
	assert.Contains(t, fields, "[1].description")
	assert.Contains(t, fields, "[1].price")
}

func TestCreate_ListaVacia(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, f.owner, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_DescripcionYCantidadAcotadas(t *testing.T) {
	f := newFixture(t)
	bad := productInput("widget", 1, 1)
	bad.Description = strings.Repeat("d", 501)
	qty := 2147483648
	bad.AvailableQuantity = &qty

	_, err := f.uc.Create(f.ctx, f.owner, []dto.CreateProductRequest{bad})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"[0].description", "[0].availableQuantity"}, fields)

	ok := productInput("widget", 1, 2147483647)
	ok.Description = strings.Repeat("d", 500)
	f.create(t, ok)
}

func TestUpdate_DescripcionLarga(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	long := strings.Repeat("d", 501)

	_, err := f.uc.Update(f.ctx, f.owner, created.ID, dto.UpdateProductRequest{Description: &long})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.history(t, created.ID))
}

func TestGetByID_PobladoSinCredencial(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]

	got, err := f.uc.GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@test.com", got.CreatedBy.Email)
	assert.Equal(t, "Ana", got.CreatedBy.Firstname)

	_, err = f.uc.GetByID(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ─── Consulta ─────────────────────────────────────────────────────────────────

func TestList_RangoDePrecioSoloActivos(t *testing.T) {
	f := newFixture(t)
	out := f.create(t,
		productInput("p3", 3, 1),
		productInput("p5", 5, 1),
		productInput("p12", 12, 1),
		productInput("p20", 20, 1),
		productInput("p25", 25, 1),
		productInput("archivado", 10, 1),
	)
	_, err := f.uc.SetStatus(f.ctx, f.owner, out[5].ID, dto.UpdateStatusRequest{Status: "ARCHIVED", Note: "fuera de temporada"})
	require.NoError(t, err)

	res, err := f.uc.List(f.ctx, map[string]string{"minPrice": "5", "maxPrice": "20"})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Items))
	for _, p := range res.Items {
		names = append(names, p.Name)
		assert.Equal(t, "ACTIVE", p.Status)
		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(5)) && p.Price.LessThanOrEqual(decimal.NewFromInt(20)))
	}
	assert.ElementsMatch(t, []string{"p5", "p12", "p20"}, names)
	assert.EqualValues(t, 3, res.Pagination.TotalDocs)
}

func TestList_PorDefectoExcluyeArchivadosYEliminados(t *testing.T) {
	f := newFixture(t)
	out := f.create(t, productInput("activo", 1, 1), productInput("archivado", 1, 1), productInput("eliminado", 1, 1))
	_, err := f.uc.SetStatus(f.ctx, f.owner, out[1].ID, dto.UpdateStatusRequest{Status: "ARCHIVED", Note: "n"})
	require.NoError(t, err)
	_, err = f.uc.Delete(f.ctx, f.owner, out[2].ID, dto.DeleteProductRequest{Note: "n"})
	require.NoError(t, err)

	res, err := f.uc.List(f.ctx, map[string]string{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "activo", res.Items[0].Name)

	res, err = f.uc.List(f.ctx, map[string]string{"status": "DELETED"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "eliminado", res.Items[0].Name)
}

func TestList_PaginasCompletasSinDuplicados(t *testing.T) {
	f := newFixture(t)
	in := make([]dto.CreateProductRequest, 0, 23)
	for i := 0; i < 23; i++ {
		in = append(in, productInput(fmt.Sprintf("item-%02d", i), int64(i%4), 1))
	}
	f.create(t, in...)

	for _, limit := range []int{1, 5, 10, 23, 50} {
		seen := map[string]bool{}
		first, err := f.uc.List(f.ctx, map[string]string{"limit": fmt.Sprint(limit), "sort": "price"})
		require.NoError(t, err)
		for page := 1; page <= first.Pagination.TotalPages; page++ {
			res, err := f.uc.List(f.ctx, map[string]string{"limit": fmt.Sprint(limit), "page": fmt.Sprint(page), "sort": "price"})
			require.NoError(t, err)
			assert.Equal(t, page < res.Pagination.TotalPages, res.Pagination.HasNextPage)
			assert.Equal(t, page > 1, res.Pagination.HasPrevPage)
			for _, p := range res.Items {
				assert.False(t, seen[p.ID], "duplicado %s con limit %d", p.ID, limit)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 23, "limit %d", limit)
		assert.EqualValues(t, 23, first.Pagination.TotalDocs)
	}
}

func TestList_SummaryProyectaCampos(t *testing.T) {
	f := newFixture(t)
	f.create(t, productInput("widget", 10, 5))

	res, err := f.uc.List(f.ctx, map[string]string{"summary": "true"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "widget", res.Items[0].Name)
	assert.Empty(t, res.Items[0].Description)
	assert.Nil(t, res.Items[0].CreatedBy)
}

func TestList_FieldsExcluyeCampos(t *testing.T) {
	f := newFixture(t)
	f.create(t, productInput("widget", 10, 5))

	res, err := f.uc.List(f.ctx, map[string]string{"fields": "-description,-createdBy"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, "widget", item.Name)
	assert.Equal(t, "ACTIVE", item.Status)
	assert.Empty(t, item.Description)
	assert.Nil(t, item.CreatedBy)
	require.NotNil(t, item.LastUpdatedBy)
	assert.Equal(t, "owner@test.com", item.LastUpdatedBy.Email)
}

// ─── Actualización auditada ───────────────────────────────────────────────────

func TestSetStatus_ArchivaYRegistraHistorial(t *testing.T) {
	f := newFixture(t)
	in := productInput("widget", 10, 5)
	created := f.create(t, in)[0]

	got, err := f.uc.SetStatus(f.ctx, f.owner, created.ID, dto.UpdateStatusRequest{Status: "ARCHIVED", Note: "seasonal"})
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVED", got.Status)

	records := f.history(t, created.ID)
	require.Len(t, records, 1)
	h := records[0]
	assert.Equal(t, entity.ProductStatusActive, h.PreviousState.Status)
	assert.Equal(t, entity.ProductStatusArchived, h.NewState.Status)
	assert.Equal(t, "seasonal", h.Notes)
	assert.Equal(t, entity.ChangeTypeStatus, h.ChangeType)
	assert.Equal(t, f.owner.ID, h.UpdatedBy)
	assert.True(t, h.CreatedAt.Equal(*created.CreatedAt), "el registro toma la fecha de creación del producto")
}

func TestUpdate_RegistraExactamenteUnHistorialPorLlamada(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	price := decimal.NewFromInt(12)

	for i := 0; i < 2; i++ {
		got, err := f.uc.Update(f.ctx, f.owner, created.ID, dto.UpdateProductRequest{Price: &price, Note: "ajuste"})
		require.NoError(t, err)
		assert.True(t, price.Equal(got.Price))
	}

	records := f.history(t, created.ID)
	require.Len(t, records, 2, "repetir el mismo update también queda auditado")
	for _, h := range records {
		assert.Equal(t, entity.ChangeTypeOther, h.ChangeType)
		assert.True(t, price.Equal(h.NewState.Price))
	}
}

func TestUpdate_EstadosDelHistorialCoincidenConElProducto(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	before, err := f.store.Products().GetByID(f.ctx, created.ID)
	require.NoError(t, err)

	name := "Widget Pro"
	_, err = f.uc.Update(f.ctx, f.admin, created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	after, err := f.store.Products().GetByID(f.ctx, created.ID)
	require.NoError(t, err)

	records := f.history(t, created.ID)
	require.Len(t, records, 1)
	assert.Equal(t, before.Name, records[0].PreviousState.Name)
	assert.Equal(t, after.Name, records[0].NewState.Name)
	assert.Equal(t, "widget pro", after.Name)
	assert.Equal(t, f.admin.ID, after.LastUpdatedBy)
	assert.Equal(t, after.UpdatedAt, records[0].NewState.UpdatedAt)
}

func TestUpdate_ProductoInexistenteSinHistorial(t *testing.T) {
	f := newFixture(t)
	name := "nuevo nombre"

	_, err := f.uc.Update(f.ctx, f.admin, "no-existe", dto.UpdateProductRequest{Name: &name})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Zero(t, f.allHistory(t))
}

func TestUpdate_RechazaStatusYCantidad(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	status := "DELETED"
	qty := 100

	_, err := f.uc.Update(f.ctx, f.owner, created.ID, dto.UpdateProductRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Update(f.ctx, f.owner, created.ID, dto.UpdateProductRequest{AvailableQuantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.Equal(t, 5, got.AvailableQuantity)
	assert.Zero(t, f.allHistory(t))
}

func TestUpdate_ValidaElResultadoDelMerge(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	blank := "   "

	_, err := f.uc.Update(f.ctx, f.owner, created.ID, dto.UpdateProductRequest{Category: &blank})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.allHistory(t))
}

func TestUpdate_SoloCreadorOAdmin(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	name := "ajeno"

	_, err := f.uc.Update(f.ctx, f.other, created.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, f.allHistory(t))

	_, err = f.uc.Update(f.ctx, f.admin, created.ID, dto.UpdateProductRequest{Name: &name})
	assert.NoError(t, err)
}

func TestSetStatus_RechazaAntesDeTocarElAlmacen(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]

	cases := []dto.UpdateStatusRequest{
		{Status: "DELETED", Note: "no permitido"},
		{Status: "PENDING", Note: "no existe"},
		{Status: "ARCHIVED", Note: ""},
		{Status: "ARCHIVED", Note: "   "},
	}
	for _, in := range cases {
		_, err := f.uc.SetStatus(f.ctx, f.owner, created.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
	// ni siquiera para un id inexistente se llega al almacén
	_, err := f.uc.SetStatus(f.ctx, f.owner, "no-existe", dto.UpdateStatusRequest{Status: "DELETED", Note: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.Zero(t, f.allHistory(t))
}

func TestDelete_EsTerminal(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]

	_, err := f.uc.Delete(f.ctx, f.owner, created.ID, dto.DeleteProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la nota es obligatoria")

	got, err := f.uc.Delete(f.ctx, f.owner, created.ID, dto.DeleteProductRequest{Note: "descontinuado"})
	require.NoError(t, err)
	assert.Equal(t, "DELETED", got.Status)

	_, err = f.uc.SetStatus(f.ctx, f.owner, created.ID, dto.UpdateStatusRequest{Status: "ACTIVE", Note: "volver"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, f.history(t, created.ID), 1)

	// sigue siendo legible por id
	_, err = f.uc.GetByID(f.ctx, created.ID)
	assert.NoError(t, err)
}

func TestAdjustQuantity_Auditado(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	value := func(n int) *int { return &n }

	got, err := f.uc.AdjustQuantity(f.ctx, f.owner, created.ID, dto.AdjustQuantityRequest{Mode: "adjust", Value: value(3), Note: "recepción"})
	require.NoError(t, err)
	assert.Equal(t, 8, got.AvailableQuantity)

	got, err = f.uc.AdjustQuantity(f.ctx, f.owner, created.ID, dto.AdjustQuantityRequest{Mode: "set", Value: value(2), Note: "conteo"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.AvailableQuantity)

	_, err = f.uc.AdjustQuantity(f.ctx, f.owner, created.ID, dto.AdjustQuantityRequest{Mode: "adjust", Value: value(-3), Note: "merma"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	records := f.history(t, created.ID)
	require.Len(t, records, 2)
	for _, h := range records {
		assert.Equal(t, entity.ChangeTypeQuantity, h.ChangeType)
	}
}

func TestAdjustQuantity_TopeDeEnteroDe32Bits(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	value := func(n int) *int { return &n }

	_, err := f.uc.AdjustQuantity(f.ctx, f.owner, created.ID, dto.AdjustQuantityRequest{Mode: "set", Value: value(3000000000), Note: "conteo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AdjustQuantity(f.ctx, f.owner, created.ID, dto.AdjustQuantityRequest{Mode: "adjust", Value: value(2147483643), Note: "recepción"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.AdjustQuantity(f.ctx, f.owner, created.ID, dto.AdjustQuantityRequest{Mode: "adjust", Value: value(2147483642), Note: "recepción"})
	require.NoError(t, err)
	assert.Equal(t, 2147483647, got.AvailableQuantity)
	assert.Len(t, f.history(t, created.ID), 1)
}

// ─── Concurrencia ─────────────────────────────────────────────────────────────

// barrierTx hace que cada transacción espere, tras leer el producto, a que las demás también lo lean.
type barrierTx struct {
	inner catalog.TxRunner
	reads *sync.WaitGroup
}

func (b barrierTx) Run(ctx context.Context, fn func(context.Context, repository.ProductRepository, repository.ProductHistoryRepository) error) error {
	return b.inner.Run(ctx, func(ctx context.Context, products repository.ProductRepository, history repository.ProductHistoryRepository) error {
		return fn(ctx, barrierProducts{ProductRepository: products, reads: b.reads}, history)
	})
}

type barrierProducts struct {
	repository.ProductRepository
	reads *sync.WaitGroup
}

func (b barrierProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := b.ProductRepository.GetByID(ctx, id)
	b.reads.Done()
	b.reads.Wait()
	return p, err
}

func TestUpdate_ConcurrentesGanaElUltimoCommit(t *testing.T) {
	reads := &sync.WaitGroup{}
	f := newFixtureWithTx(t, func(inner catalog.TxRunner) catalog.TxRunner {
		return barrierTx{inner: inner, reads: reads}
	})
	created := f.create(t, productInput("widget", 10, 5))[0]

	prices := []decimal.Decimal{decimal.NewFromInt(11), decimal.NewFromInt(22)}
	reads.Add(len(prices))
	var wg sync.WaitGroup
	errs := make([]error, len(prices))
	for i := range prices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Update(f.ctx, f.owner, created.ID, dto.UpdateProductRequest{Price: &prices[i]})
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	final, err := f.store.Products().GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	records := f.history(t, created.ID)
	require.Len(t, records, 2)

	// ambos partieron del mismo estado: la escritura del primero en confirmar se pierde
	written := 0
	for _, h := range records {
		assert.True(t, decimal.NewFromInt(10).Equal(h.PreviousState.Price))
		assert.False(t, h.PreviousState.Price.Equal(h.NewState.Price))
		if final.Price.Equal(h.NewState.Price) {
			written++
		}
	}
	assert.Equal(t, 1, written, "el estado final es el de exactamente una de las dos llamadas")
	assert.True(t, final.Price.Equal(prices[0]) || final.Price.Equal(prices[1]))
}

// ─── Historial ────────────────────────────────────────────────────────────────

func TestHistory_FiltrosDeFecha(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, productInput("widget", 10, 5))[0]
	for _, note := range []string{"uno", "dos"} {
		_, err := f.uc.SetStatus(f.ctx, f.owner, created.ID, dto.UpdateStatusRequest{Status: "ARCHIVED", Note: note})
		require.NoError(t, err)
	}
	day := created.CreatedAt.UTC().Format(time.DateOnly)
	nextDay := created.CreatedAt.UTC().Add(24 * time.Hour).Format(time.DateOnly)

	res, err := f.uc.History(f.ctx, created.ID, dto.HistoryQuery{Date: day})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Pagination.TotalDocs)
	assert.Equal(t, "owner@test.com", res.Items[0].UpdatedBy.Email)
	assert.Equal(t, "dos", res.Items[0].Notes, "más reciente primero")

	res, err = f.uc.History(f.ctx, created.ID, dto.HistoryQuery{StartDate: nextDay})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = f.uc.History(f.ctx, created.ID, dto.HistoryQuery{StartDate: day, EndDate: day})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2, "endDate sin hora incluye el día completo")

	_, err = f.uc.History(f.ctx, created.ID, dto.HistoryQuery{Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.History(f.ctx, "no-existe", dto.HistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
