package app

import (
	"fmt"
	"reflect"
	"strings"

	"placementcms/domain/core"
	apperrors "placementcms/internal/errors"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports JSON field names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator output into a VALIDATION_ERROR AppError
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.WithCode(apperrors.CodeValidationError, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag()))
		}
	}
	return apperrors.ValidationError(strings.Join(msgs, "; "))
}

// mapRepoError tags repository errors with the matching AppError code
func mapRepoError(err error, message string) error {
	switch {
	case core.IsNotFoundError(err):
		return apperrors.WithCode(apperrors.CodeNotFound, apperrors.Wrap(err, message))
	case core.IsConflictError(err):
		return apperrors.WithCode(apperrors.CodeConflict, apperrors.Wrap(err, message))
	default:
		return apperrors.WithCode(apperrors.CodeDatabaseError, apperrors.Wrap(err, message))
	}
}
