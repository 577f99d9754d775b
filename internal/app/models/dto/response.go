package dto

// MessageResponse is the envelope shared by all success responses: a human
// readable message plus a named payload added by the specific response type.
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse is the envelope for all error responses. The HTTP status
// conveys the error kind (400 validation, 403 forbidden, 404 not found,
// 409 conflict, 500 internal).
type ErrorResponse struct {
	Message string `json:"message" example:"student not found"`
	Error   string `json:"error" example:"resource not found"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message, kind string) ErrorResponse {
	return ErrorResponse{Message: message, Error: kind}
}

// PaginationInfo represents pagination metadata returned with list responses
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"2"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"25"`
}
