package service

import (
	"barter/db"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service реализует сценарии работы с объявлениями, предложениями обмена
// и пользователями поверх Storage
type Service struct {
	store    Storage
	validate *validator.Validate
	logger   *zap.Logger
}

// New создает Service. logger может быть nil.
func New(store Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		validate: newValidator(),
		logger:   logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Имена полей в ошибках берем из json-тегов
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct проверяет теги validate и возвращает *ValidationError
func (s *Service) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fe.Field()] = fieldMessage(fe)
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}

// storeErr переводит ошибки хранилища в ошибки сервиса
func storeErr(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func requireActor(requesterID int64) error {
	if requesterID <= 0 {
		return ErrUnauthenticated
	}
	return nil
}
