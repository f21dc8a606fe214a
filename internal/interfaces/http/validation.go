package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// nombres de campo como viajan en el JSON/form
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// ValidateStruct devuelve campo → mensaje, o nil si no hay errores.
func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			fields[fe.Field()] = getErrorMessage(fe)
		}
	}
	return fields
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "formato de email inválido"
	case "min":
		return fmt.Sprintf("mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "numeric", "number":
		return "debe ser numérico"
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("valor inválido para %s", fe.Field())
	}
}

func validationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Fields:  fields,
	})
}

// bind parsea el cuerpo en out y lo valida. Devuelve ok=false cuando ya respondió 400.
func bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	if fields := ValidateStruct(out); fields != nil {
		return false, validationFailed(c, fields)
	}
	return true, nil
}
