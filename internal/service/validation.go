package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator общий валидатор для сервисов
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validationError превращает ошибки validator в ErrValidation с перечнем полей
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: invalid fields: %s", ErrValidation, strings.Join(fields, ", "))
}
