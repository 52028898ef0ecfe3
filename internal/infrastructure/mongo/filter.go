package mongo

import (
	"regexp"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindObjectID
	kindDecimal
	kindInt
	kindTime
)

// fieldSpec ruta en el documento y tipo almacenado de un campo lógico.
type fieldSpec struct {
	path string
	kind fieldKind
}

var productFields = map[string]fieldSpec{
	repository.ProductFieldID:                {"_id", kindObjectID},
	repository.ProductFieldName:              {"name", kindString},
	repository.ProductFieldDescription:       {"description", kindString},
	repository.ProductFieldPrice:             {"price", kindDecimal},
	repository.ProductFieldCategory:          {"category", kindString},
	repository.ProductFieldAvailableQuantity: {"availableQuantity", kindInt},
	repository.ProductFieldImageURL:          {"imageUrl", kindString},
	repository.ProductFieldStatus:            {"status", kindString},
	repository.ProductFieldCreatedBy:         {"createdBy", kindObjectID},
	repository.ProductFieldLastUpdatedBy:     {"lastUpdatedBy", kindObjectID},
	repository.ProductFieldCreatedAt:         {"createdAt", kindTime},
	repository.ProductFieldUpdatedAt:         {"updatedAt", kindTime},
}

var historyFields = map[string]fieldSpec{
	"id":                              {"_id", kindObjectID},
	repository.HistoryFieldProductID:  {"productId", kindObjectID},
	repository.HistoryFieldUpdatedBy:  {"updatedBy", kindObjectID},
	repository.HistoryFieldChangeType: {"changeType", kindString},
	repository.HistoryFieldCreatedAt:  {"createdAt", kindTime},
	repository.HistoryFieldRecordedAt: {"recordedAt", kindTime},
}

// managerRefPaths campos publicables de un manager; password nunca aparece aquí.
var managerRefPaths = map[string]string{
	"firstname": "firstname",
	"lastname":  "lastname",
	"email":     "email",
}

// errUnknownField campo o valor fuera de la lista blanca.
func errUnknownField(kind, field string) error {
	return errors.Wrapf(domain.ErrInvalidInput, "mongo: campo de %s no soportado %q", kind, field)
}

// buildMatch traduce el filtro a un documento $match. Varias condiciones sobre el mismo
// campo se combinan en un único sub-documento ({price: {$gte: .., $lte: ..}}).
func buildMatch(filter repository.Filter, fields map[string]fieldSpec) (bson.D, error) {
	match := bson.D{}
	index := map[string]int{}
	for _, c := range filter {
		fs, ok := fields[c.Field]
		if !ok {
			return nil, errUnknownField("filtro", c.Field)
		}
		var (
			op  string
			val any
			err error
		)
		switch c.Op {
		case repository.OpEq:
			op = "$eq"
			val, err = convertValue(c.Value, fs.kind)
		case repository.OpGte:
			op = "$gte"
			val, err = convertValue(c.Value, fs.kind)
		case repository.OpLte:
			op = "$lte"
			val, err = convertValue(c.Value, fs.kind)
		case repository.OpContains:
			if fs.kind != kindString {
				return nil, errors.Wrapf(domain.ErrInvalidInput, "mongo: contains sobre campo no textual %q", c.Field)
			}
			op = "$regex"
			val = primitive.Regex{Pattern: regexp.QuoteMeta(cast.ToString(c.Value)), Options: "i"}
		default:
			return nil, errors.Wrapf(domain.ErrInvalidInput, "mongo: operador %q", c.Op)
		}
		if err != nil {
			return nil, errors.Wrapf(domain.ErrInvalidInput, "mongo: valor de %s: %v", c.Field, err)
		}
		if i, seen := index[fs.path]; seen {
			sub := match[i].Value.(bson.D)
			match[i].Value = append(sub, bson.E{Key: op, Value: val})
			continue
		}
		index[fs.path] = len(match)
		match = append(match, bson.E{Key: fs.path, Value: bson.D{{Key: op, Value: val}}})
	}
	return match, nil
}

func convertValue(v any, kind fieldKind) (any, error) {
	switch kind {
	case kindObjectID:
		return primitive.ObjectIDFromHex(cast.ToString(v))
	case kindDecimal:
		var d decimal.Decimal
		switch x := v.(type) {
		case decimal.Decimal:
			d = x
		default:
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, err
			}
			d = decimal.NewFromFloat(f)
		}
		return toDecimal128(d)
	case kindInt:
		return cast.ToIntE(v)
	case kindTime:
		return cast.ToTimeE(v)
	default:
		return cast.ToStringE(v)
	}
}

// buildSort orden pedido más _id como desempate para que la paginación sea estable.
func buildSort(sortBy []repository.SortField, fields map[string]fieldSpec) (bson.D, error) {
	out := bson.D{}
	hasID := false
	for _, s := range sortBy {
		fs, ok := fields[s.Field]
		if !ok {
			return nil, errUnknownField("orden", s.Field)
		}
		dir := 1
		if s.Desc {
			dir = -1
		}
		out = append(out, bson.E{Key: fs.path, Value: dir})
		hasID = hasID || fs.path == "_id"
	}
	if !hasID {
		out = append(out, bson.E{Key: "_id", Value: 1})
	}
	return out, nil
}

// buildProjection $project por inclusión (Fields) o por exclusión (Exclude); nil si no hay
// proyección. _id nunca se excluye.
func buildProjection(opts repository.PageOptions, fields map[string]fieldSpec) (bson.D, error) {
	if !opts.Projected() {
		return nil, nil
	}
	for _, list := range [][]string{opts.Fields, opts.Exclude} {
		for _, f := range list {
			if _, ok := fields[f]; !ok {
				return nil, errUnknownField("proyección", f)
			}
		}
	}
	out := bson.D{}
	if len(opts.Fields) > 0 {
		for _, f := range opts.Fields {
			path := fields[f].path
			if path == "_id" || !opts.Includes(f) {
				continue
			}
			out = append(out, bson.E{Key: path, Value: 1})
		}
		if len(out) == 0 {
			out = bson.D{{Key: "_id", Value: 1}}
		}
		return out, nil
	}
	for _, f := range opts.Exclude {
		if path := fields[f].path; path != "_id" {
			out = append(out, bson.E{Key: path, Value: 0})
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// lookupStage resuelve una referencia a managers con el subconjunto de campos pedido.
func lookupStage(localField, as string, selectFields []string) (bson.D, error) {
	project := bson.D{}
	for _, f := range selectFields {
		if f == "id" {
			continue
		}
		path, ok := managerRefPaths[f]
		if !ok {
			return nil, errUnknownField("populate", f)
		}
		project = append(project, bson.E{Key: path, Value: 1})
	}
	if len(project) == 0 {
		project = bson.D{{Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: managersCollection},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: project}}}},
		{Key: "as", Value: as},
	}}}, nil
}

// populateTarget campo de destino del $lookup para cada referencia.
type populateTarget struct {
	localField string
	as         string
}

// buildPipeline $match, $sort, $skip, $limit, $project y un $lookup por referencia pedida
// (solo si la referencia sobrevive a la proyección).
func buildPipeline(
	match bson.D,
	opts repository.PageOptions,
	fields map[string]fieldSpec,
	targets map[string]populateTarget,
) (mongo.Pipeline, error) {
	sortDoc, err := buildSort(opts.Sort, fields)
	if err != nil {
		return nil, err
	}
	projection, err := buildProjection(opts, fields)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sortDoc}},
		{{Key: "$skip", Value: int64(opts.Offset())}},
		{{Key: "$limit", Value: int64(opts.Limit)}},
	}
	if projection != nil {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection}})
	}
	for _, p := range opts.Populate {
		target, ok := targets[p.Path]
		if !ok {
			return nil, errUnknownField("populate", p.Path)
		}
		if !opts.Includes(p.Path) {
			continue
		}
		stage, err := lookupStage(target.localField, target.as, p.Select)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, stage)
	}
	return pipeline, nil
}
