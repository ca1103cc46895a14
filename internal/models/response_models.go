package models

// Error codes carried in ErrorDetails.Code.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeFirestoreError  = "FIRESTORE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeInternalError   = "INTERNAL_ERROR"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *ErrorDetails `json:"error,omitempty"`
}

// ErrorDetails describes a failed request.
type ErrorDetails struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Success wraps data in a successful envelope.
func Success(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Failure builds an error envelope.
func Failure(message, code string) APIResponse {
	return APIResponse{Success: false, Error: &ErrorDetails{Message: message, Code: code}}
}
