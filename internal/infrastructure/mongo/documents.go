package mongo

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

type managerDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Firstname   string             `bson:"firstname"`
	Lastname    string             `bson:"lastname"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phonenumber"`
	Password    string             `bson:"password"`
	Role        string             `bson:"role"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// managerRefDocument resultado de $lookup con proyección restringida.
type managerRefDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Firstname string             `bson:"firstname,omitempty"`
	Lastname  string             `bson:"lastname,omitempty"`
	Email     string             `bson:"email,omitempty"`
}

type productDocument struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	Name              string               `bson:"name,omitempty"`
	Description       string               `bson:"description,omitempty"`
	Price             primitive.Decimal128 `bson:"price"`
	Category          string               `bson:"category,omitempty"`
	AvailableQuantity int                  `bson:"availableQuantity"`
	ImageURL          string               `bson:"imageUrl,omitempty"`
	Status            string               `bson:"status,omitempty"`
	CreatedBy         primitive.ObjectID   `bson:"createdBy,omitempty"`
	LastUpdatedBy     primitive.ObjectID   `bson:"lastUpdatedBy,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt,omitempty"`
	UpdatedAt         time.Time            `bson:"updatedAt,omitempty"`

	// solo en lecturas con $lookup
	Creator     []managerRefDocument `bson:"creator,omitempty"`
	LastUpdater []managerRefDocument `bson:"lastUpdater,omitempty"`
}

type historyDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	ProductID     primitive.ObjectID   `bson:"productId"`
	PreviousState productDocument      `bson:"previousState"`
	NewState      productDocument      `bson:"newState"`
	ChangeType    string               `bson:"changeType"`
	Notes         string               `bson:"notes,omitempty"`
	UpdatedBy     primitive.ObjectID   `bson:"updatedBy"`
	CreatedAt     time.Time            `bson:"createdAt"`
	RecordedAt    time.Time            `bson:"recordedAt"`
	UpdatedByRef  []managerRefDocument `bson:"updatedByRef,omitempty"`
}

func toManagerDocument(m *entity.Manager) (*managerDocument, error) {
	doc := &managerDocument{
		Firstname:   m.Firstname,
		Lastname:    m.Lastname,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Password:    m.PasswordHash,
		Role:        m.Role,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ID != "" {
		id, err := primitive.ObjectIDFromHex(m.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "mongo: id de manager %q", m.ID)
		}
		doc.ID = id
	}
	return doc, nil
}

func (d *managerDocument) toEntity() *entity.Manager {
	return &entity.Manager{
		ID:           d.ID.Hex(),
		Firstname:    d.Firstname,
		Lastname:     d.Lastname,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.Password,
		Role:         d.Role,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toProductDocument(p *entity.Product) (*productDocument, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	doc := &productDocument{
		Name:              p.Name,
		Description:       p.Description,
		Price:             price,
		Category:          p.Category,
		AvailableQuantity: p.AvailableQuantity,
		ImageURL:          p.ImageURL,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if doc.ID, err = optionalObjectID(p.ID); err != nil {
		return nil, err
	}
	if doc.CreatedBy, err = optionalObjectID(p.CreatedBy); err != nil {
		return nil, err
	}
	if doc.LastUpdatedBy, err = optionalObjectID(p.LastUpdatedBy); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *productDocument) toEntity() (*entity.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Description:       d.Description,
		Price:             price,
		Category:          d.Category,
		AvailableQuantity: d.AvailableQuantity,
		ImageURL:          d.ImageURL,
		Status:            entity.ProductStatus(d.Status),
		CreatedBy:         hexOrEmpty(d.CreatedBy),
		LastUpdatedBy:     hexOrEmpty(d.LastUpdatedBy),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if len(d.Creator) > 0 {
		p.Creator = d.Creator[0].toEntity()
	}
	if len(d.LastUpdater) > 0 {
		p.LastUpdater = d.LastUpdater[0].toEntity()
	}
	return p, nil
}

func (d managerRefDocument) toEntity() *entity.ManagerRef {
	return &entity.ManagerRef{ID: d.ID.Hex(), Firstname: d.Firstname, Lastname: d.Lastname, Email: d.Email}
}

func toHistoryDocument(h *entity.ProductChangeHistory) (*historyDocument, error) {
	prev, err := toProductDocument(&h.PreviousState)
	if err != nil {
		return nil, err
	}
	next, err := toProductDocument(&h.NewState)
	if err != nil {
		return nil, err
	}
	doc := &historyDocument{
		PreviousState: *prev,
		NewState:      *next,
		ChangeType:    string(h.ChangeType),
		Notes:         h.Notes,
		CreatedAt:     h.CreatedAt,
		RecordedAt:    h.RecordedAt,
	}
	if doc.ProductID, err = optionalObjectID(h.ProductID); err != nil {
		return nil, err
	}
	if doc.UpdatedBy, err = optionalObjectID(h.UpdatedBy); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *historyDocument) toEntity() (*entity.ProductChangeHistory, error) {
	prev, err := d.PreviousState.toEntity()
	if err != nil {
		return nil, err
	}
	next, err := d.NewState.toEntity()
	if err != nil {
		return nil, err
	}
	h := &entity.ProductChangeHistory{
		ID:            d.ID.Hex(),
		ProductID:     d.ProductID.Hex(),
		PreviousState: *prev,
		NewState:      *next,
		ChangeType:    entity.ProductChangeType(d.ChangeType),
		Notes:         d.Notes,
		UpdatedBy:     hexOrEmpty(d.UpdatedBy),
		CreatedAt:     d.CreatedAt,
		RecordedAt:    d.RecordedAt,
	}
	if len(d.UpdatedByRef) > 0 {
		h.UpdatedByRef = d.UpdatedByRef[0].toEntity()
	}
	return h, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, errors.Wrapf(err, "mongo: precio %s", d)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	if v.IsZero() {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "mongo: precio %s", v)
	}
	return d, nil
}

func optionalObjectID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(err, "mongo: id %q", hex)
	}
	return id, nil
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// statsDocument resultado del $facet de Stats.
type statsDocument struct {
	Totals []struct {
		TotalProducts  int64                `bson:"totalProducts"`
		AvgPrice       primitive.Decimal128 `bson:"avgPrice"`
		MinPrice       primitive.Decimal128 `bson:"minPrice"`
		MaxPrice       primitive.Decimal128 `bson:"maxPrice"`
		TotalInventory int64                `bson:"totalInventory"`
	} `bson:"totals"`
	Categories []struct {
		Category       string               `bson:"_id"`
		Count          int64                `bson:"count"`
		AvgPrice       primitive.Decimal128 `bson:"avgPrice"`
		TotalInventory int64                `bson:"totalInventory"`
	} `bson:"categories"`
}

func (d *statsDocument) toEntity() (*entity.ProductStats, error) {
	stats := &entity.ProductStats{Categories: make([]entity.CategoryStats, 0, len(d.Categories))}
	if len(d.Totals) > 0 {
		t := d.Totals[0]
		stats.TotalProducts = t.TotalProducts
		stats.TotalInventory = t.TotalInventory
		for _, f := range []struct {
			dst *decimal.Decimal
			src primitive.Decimal128
		}{{&stats.AvgPrice, t.AvgPrice}, {&stats.MinPrice, t.MinPrice}, {&stats.MaxPrice, t.MaxPrice}} {
			v, err := fromDecimal128(f.src)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
	}
	for _, c := range d.Categories {
		avg, err := fromDecimal128(c.AvgPrice)
		if err != nil {
			return nil, err
		}
		stats.Categories = append(stats.Categories, entity.CategoryStats{
			Category:       c.Category,
			Count:          c.Count,
			AvgPrice:       avg,
			TotalInventory: c.TotalInventory,
		})
	}
	return stats, nil
}
