package employeeerrors

import (
	"go-roster/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrValidationFailed = apperror.New(
		apperror.CodeValidation,
		"Employee form is invalid",
		http.StatusUnprocessableEntity,
	)
	ErrUnknownFormField = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown form field",
		http.StatusBadRequest,
	)
	ErrSaveCancelled = apperror.New(
		apperror.CodeServiceUnavailable,
		"Saving the employee was cancelled",
		http.StatusServiceUnavailable,
	)
)
