package dto

// DataResponse wraps every successful JSON payload.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ErrorResponse is the body of every failed request. Reason carries the stable error kind.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Reason string            `json:"reason,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}
