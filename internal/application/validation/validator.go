// Package validation envuelve go-playground/validator y traduce sus errores a domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain"
)

// Validator es seguro para uso concurrente (validator.Validate cachea estructuras).
type Validator struct {
	v *validator.Validate
}

// New registra las reglas propias (strongpassword, productstatus) y el soporte de decimal.Decimal.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	// decimal.Decimal se valida como float64 (min=0, gte=0...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return &Validator{v: v}
}

// Struct valida s; devuelve *domain.ValidationError o nil.
func (val *Validator) Struct(s any) error {
	return val.translate(val.v.Struct(s), "")
}

// Var valida un valor suelto bajo el nombre de campo indicado.
func (val *Validator) Var(field string, value any, tag string) error {
	return val.translate(val.v.Var(value, tag), field)
}

func (val *Validator) translate(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fieldPath(fe)
		}
		out.Add(name, message(name, fe))
	}
	return out.OrNil()
}

// fieldPath quita el nombre del struct raíz: "CreateProductRequest.name" -> "name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "url", "uri":
		return fmt.Sprintf("%s debe ser una URL válida", field)
	case "dive":
		return fmt.Sprintf("%s contiene elementos inválidos", field)
	case "strongpassword":
		return fmt.Sprintf("%s debe tener al menos 8 caracteres, una mayúscula, un número y un carácter especial", field)
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}

// strongPassword: mínimo 8 caracteres, una mayúscula, un dígito y un carácter especial.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len([]rune(s)) < 8 {
		return false
	}
	var upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	return upper && digit && special
}
