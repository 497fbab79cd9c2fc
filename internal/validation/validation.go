package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength valida la longitud mínima de un string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return fmt.Errorf("%s must be at least %d characters long", fieldName, minLength)
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateUUID valida que un string sea un UUID válido
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errors.New(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidatePhone valida un teléfono de invitado: dígitos, espacios y un
// prefijo + opcional. La identidad de invitados es texto libre, así que la
// validación es deliberadamente laxa.
func ValidatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return errors.New("phone is required")
	}
	digits := 0
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return errors.New("phone has an invalid character")
		}
	}
	if digits < 6 {
		return errors.New("phone must have at least 6 digits")
	}
	return nil
}

// EventValidation contiene validaciones específicas para eventos
type EventValidation struct{}

// ValidateEventName valida el nombre de un evento
func (v EventValidation) ValidateEventName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 3, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateEventCode valida el código de acceso de un evento
func (v EventValidation) ValidateEventCode(code string) error {
	if err := ValidateRequired(code, "code"); err != nil {
		return err
	}
	if err := ValidateMinLength(code, 4, "code"); err != nil {
		return err
	}
	return ValidateMaxLength(code, 32, "code")
}

// GuestValidation contiene validaciones específicas para invitados
type GuestValidation struct{}

// ValidateGuestName valida el nombre de un invitado
func (v GuestValidation) ValidateGuestName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 50, "name")
}

// ValidateGuestPhone valida el teléfono de un invitado
func (v GuestValidation) ValidateGuestPhone(phone string) error {
	return ValidatePhone(phone)
}

// MessageValidation contiene validaciones específicas para mensajes
type MessageValidation struct{}

// ValidateBody valida el cuerpo de un mensaje
func (v MessageValidation) ValidateBody(body string) error {
	if err := ValidateRequired(body, "message"); err != nil {
		return err
	}
	return ValidateMaxLength(body, 500, "message")
}
