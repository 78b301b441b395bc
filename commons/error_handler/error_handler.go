package error_handler

import (
	"jobfinder/commons/response"
	"net/http"
)

type ErrorCollection struct {
	errors []response.Errors
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{
		errors: make([]response.Errors, 0),
	}
}

func (ec *ErrorCollection) AddError(code int, message string, data any) *ErrorCollection {
	ec.errors = append(ec.errors, response.Errors{
		ErrorCode: code,
		Message:   message,
		Data:      data,
	})
	return ec
}

func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *ErrorCollection) GetErrors() []response.Errors {
	return ec.errors
}

// GetHTTPStatus maps the first (primary) error code onto an HTTP status.
// Unknown codes collapse to 400 or 500 depending on their range.
func (ec *ErrorCollection) GetHTTPStatus() int {
	if !ec.HasErrors() {
		return http.StatusOK
	}

	switch ec.errors[0].ErrorCode {
	case CodeValidationError:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeNotImplemented:
		return http.StatusNotImplemented
	case CodeUpstreamError:
		return http.StatusBadGateway
	}

	if ec.errors[0].ErrorCode >= 500 {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Error taxonomy codes
const (
	CodeValidationError     = 400
	CodeNotFound            = 404
	CodeConflict            = 409
	CodeInternalServerError = 500
	CodeNotImplemented      = 501
	CodeUpstreamError       = 502
)

// Helper functions for common errors
func GetValidationError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeValidationError,
		Message:   message,
		Data:      nil,
	}
}

func GetNotFoundError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeNotFound,
		Message:   message,
		Data:      nil,
	}
}

func GetInternalServerError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeInternalServerError,
		Message:   message,
		Data:      nil,
	}
}

func GetNotImplementedError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeNotImplemented,
		Message:   message,
		Data:      nil,
	}
}
