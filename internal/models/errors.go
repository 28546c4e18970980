package models

// ValidationError — некорректные или отсутствующие параметры запроса.
// Обнаруживается до обращения к хранилищу; Reason — стабильный машиночитаемый код,
// например "start_missing".
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NewValidationError — короткий конструктор.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
