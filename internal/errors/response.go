package errors

import "net/http"

// ErrorDetail is the inner payload of an API error response
type ErrorDetail struct {
	Message string                 `json:"message"`
	Hint    string                 `json:"hint,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the JSON shape returned for every failed request
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorResponse builds the API response for an error, exposing only the
// hint and reportable details, never the raw cause chain.
func NewErrorResponse(err error) *ErrorResponse {
	detail := ErrorDetail{
		Message: publicMessage(err),
		Hint:    Hint(err),
		Details: Details(err),
	}
	return &ErrorResponse{Error: detail}
}

func publicMessage(err error) string {
	switch {
	case IsValidation(err):
		return "validation failed"
	case IsNotFound(err):
		return "resource not found"
	case IsAlreadyExists(err):
		return "resource already exists"
	case IsPermissionDenied(err):
		return "permission denied"
	case IsInvalidOperation(err):
		return "invalid operation"
	default:
		return "internal server error"
	}
}

// HTTPStatusFromErr maps the error taxonomy to HTTP status codes
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsPermissionDenied(err):
		return http.StatusForbidden
	case IsInvalidOperation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
