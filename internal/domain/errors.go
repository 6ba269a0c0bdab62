package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente para esta operación")
)

// RuleError describe la regla violada. Kind es uno de los errores de dominio de arriba;
// errors.Is(err, domain.ErrConflict) funciona a través de Unwrap.
type RuleError struct {
	Kind error
	Rule string
}

func (e *RuleError) Error() string {
	if e.Rule == "" {
		return e.Kind.Error()
	}
	return e.Rule
}

func (e *RuleError) Unwrap() error { return e.Kind }

// Is permite que ErrDuplicate también sea reconocido como ErrConflict.
func (e *RuleError) Is(target error) bool {
	return target == ErrConflict && e.Kind == ErrDuplicate
}

// Invalid devuelve un ErrInvalidInput con el mensaje de la regla.
func Invalid(rule string) error { return &RuleError{Kind: ErrInvalidInput, Rule: rule} }

// NotFound devuelve un ErrNotFound con el mensaje de la regla.
func NotFound(rule string) error { return &RuleError{Kind: ErrNotFound, Rule: rule} }

// Conflict devuelve un ErrConflict con el mensaje de la regla.
func Conflict(rule string) error { return &RuleError{Kind: ErrConflict, Rule: rule} }

// Duplicate devuelve un ErrDuplicate (también ErrConflict) con el mensaje de la regla.
func Duplicate(rule string) error { return &RuleError{Kind: ErrDuplicate, Rule: rule} }

// InsufficientStock devuelve un ErrInsufficientStock con el mensaje de la regla.
func InsufficientStock(rule string) error {
	return &RuleError{Kind: ErrInsufficientStock, Rule: rule}
}
