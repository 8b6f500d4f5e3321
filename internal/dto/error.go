package dto

// ErrorResponse is the uniform error envelope. Data carries a field→reason
// map for validation failures and is null otherwise.
type ErrorResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
