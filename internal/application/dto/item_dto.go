package dto

import "time"

// CreateItemRequest entrada para crear un ítem.
type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Quantity    *string `json:"quantity"`
	WarehouseID *int64  `json:"warehouse_id"`
}

// ListItemsRequest filtros del listado de ítems.
type ListItemsRequest struct {
	ActiveOnly bool
	Search     string
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Quantity    *string   `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
	WarehouseID *int64    `json:"warehouse_id"`
}

// CreatedItemResponse salida de la creación: el ítem y dónde quedó su código QR.
type CreatedItemResponse struct {
	ID               int64   `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	ArtifactLocation string  `json:"artifact_location"`
	Quantity         *string `json:"quantity"`
	WarehouseID      *int64  `json:"warehouse_id"`
}

// CheckoutResponse confirmación del retiro de un ítem.
type CheckoutResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MoveItemResponse vínculo actualizado tras mover un ítem.
type MoveItemResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	WarehouseID *int64 `json:"warehouse_id"`
}

// ItemLabel datos necesarios para imprimir la etiqueta de un ítem.
type ItemLabel struct {
	Code          string
	Name          string
	Quantity      string
	WarehouseName string
}
