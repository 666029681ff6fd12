package fare

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation       ErrorCode = "VALIDATION"
	ErrorCodeOriginNotAllowed ErrorCode = "ORIGIN_NOT_ALLOWED"
	ErrorCodeNoEligibleOffers ErrorCode = "NO_ELIGIBLE_OFFERS"
	ErrorCodeMissingPassenger ErrorCode = "MISSING_PASSENGER"
	ErrorCodeProviderFailure  ErrorCode = "PROVIDER_FAILURE"
	ErrorCodeInternalFailure  ErrorCode = "INTERNAL_FAILURE"
)

// AppError is the service-level error the HTTP layer renders directly.
type AppError struct {
	Status      int
	Code        ErrorCode
	Message     string
	Diagnostics []Diagnostic
}

func (e *AppError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrorCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func newOriginNotAllowedError(origin string) *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    ErrorCodeOriginNotAllowed,
		Message: fmt.Sprintf("origin %q is not in the allowed origins list", origin),
	}
}

func newNoEligibleOffersError(diagnostics []Diagnostic) *AppError {
	return &AppError{
		Status:      http.StatusNotFound,
		Code:        ErrorCodeNoEligibleOffers,
		Message:     "no eligible offers found for any destination",
		Diagnostics: diagnostics,
	}
}

func newMissingPassengerError(offerID string) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    ErrorCodeMissingPassenger,
		Message: fmt.Sprintf("offer %q carries no passenger id; supply passenger_id explicitly", offerID),
	}
}
