package validation

import (
	"errors"

	"cyber-contact-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldError pairs a JSON field name with its user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldMessages holds the fixed message per field; "invalid" covers every
// non-presence rule (length, format, enumeration).
var fieldMessages = map[string]struct{ required, invalid string }{
	"name":    {"El nombre es obligatorio", "El nombre debe tener entre 2 y 100 caracteres"},
	"email":   {"El email es obligatorio", "El email no tiene un formato válido"},
	"company": {"La empresa es obligatoria", "La empresa debe tener entre 2 y 200 caracteres"},
	"phone":   {"El teléfono no es válido (9 a 15 dígitos, con prefijo + opcional)", "El teléfono no es válido (9 a 15 dígitos, con prefijo + opcional)"},
	"service": {"Selecciona un servicio válido", "Selecciona un servicio válido"},
	"message": {"El mensaje es obligatorio", "El mensaje debe tener entre 10 y 5000 caracteres"},
}

// ContactValidator applies the contact form rule set.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator registers the custom rules on v and wraps it.
func NewContactValidator(v *validator.Validate) *ContactValidator {
	RegisterValidators(v)
	return &ContactValidator{validate: v}
}

// Validate returns every violated rule in field order. An empty result means the submission is accepted.
func (cv *ContactValidator) Validate(sub domain.ContactSubmission) []string {
	fieldErrs := cv.FieldErrors(sub)
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Message)
	}
	return messages
}

// FieldErrors is Validate keyed by field, for per-field display.
func (cv *ContactValidator) FieldErrors(sub domain.ContactSubmission) []FieldError {
	trimmed := sub.Trimmed()
	err := cv.validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// InvalidValidationError only happens on programmer error; never leak it as a field problem
		return []FieldError{{Field: "", Message: "Formulario inválido"}}
	}

	result := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		result = append(result, FieldError{Field: e.Field(), Message: formatSingleError(e)})
	}
	return result
}

// formatSingleError maps a validator failure to the fixed message for its field
func formatSingleError(e validator.FieldError) string {
	msgs, ok := fieldMessages[e.Field()]
	if !ok {
		return e.Field() + ": valor no válido"
	}
	if e.Tag() == "required" {
		return msgs.required
	}
	return msgs.invalid
}
