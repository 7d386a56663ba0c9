package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a content record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned when no valid session token accompanies a request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the authenticated user lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrUnsupportedMedia is returned when an uploaded file is not an accepted image format.
	ErrUnsupportedMedia = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when an uploaded file exceeds the size ceiling.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadFailed is returned when storing an upload in remote storage fails.
	ErrUploadFailed = errors.New("image upload failed")
	// ErrInvalidResetToken is returned when a password-reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrMissingSecret is returned when the server has no signing secret configured.
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Internal details never
// leak: unknown errors collapse to a generic 500 body.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUnsupportedMedia):
		return NewHTTPError(http.StatusUnsupportedMediaType, ErrUnsupportedMedia.Error(), "UNSUPPORTED_MEDIA_TYPE")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), "PAYLOAD_TOO_LARGE")
	case errors.Is(err, ErrUploadFailed):
		return NewHTTPError(http.StatusInternalServerError, ErrUploadFailed.Error(), "UPLOAD_FAILED")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidResetToken.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrMissingSecret):
		return NewHTTPError(http.StatusInternalServerError, "server misconfiguration", "CONFIGURATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
