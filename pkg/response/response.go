package response

import "net/http"

// APIResponse is the envelope every route returns, success or failure.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func New(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// APIError carries an HTTP status alongside the message so handlers can
// render it straight into the envelope.
type APIError struct {
	Status  int    `json:"statusCode"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func InvalidArgument(message string) *APIError {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *APIError {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *APIError {
	return NewError(http.StatusNotFound, message)
}

func Conflict(message string) *APIError {
	return NewError(http.StatusConflict, message)
}

func Internal(message string) *APIError {
	return NewError(http.StatusInternalServerError, message)
}

// StatusOf maps any error to the status it should be served with.
func StatusOf(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
