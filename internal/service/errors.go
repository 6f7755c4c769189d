package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound - запрошенная сущность не существует
	ErrNotFound = errors.New("not found")
	// ErrForbidden - пользователь не владеет сущностью, которую пытается изменить
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated - операция требует аутентифицированного пользователя
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials - неверное имя пользователя или пароль
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError содержит ошибки по полям
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation сообщает, является ли err ошибкой валидации
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
