package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedResponse confirmación de un borrado definitivo.
type DeletedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
