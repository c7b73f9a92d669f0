package entity

import "time"

// Item representa un objeto inventariado e identificado externamente por Code
// (el contenido del código QR impreso en la etiqueta).
type Item struct {
	ID          int64
	Code        string  // token corto y único, inmutable
	Name        string
	Quantity    *string // cantidad/unidad como texto libre
	CreatedAt   time.Time
	IsActive    bool   // false = retirado (checkout)
	WarehouseID *int64 // nil = sin bodega asignada
}

// ItemFilter criterios de listado de ítems.
type ItemFilter struct {
	ActiveOnly  bool
	Search      string // subcadena del nombre, sin distinguir mayúsculas
	WarehouseID *int64
}
