package entity

import "time"

// Warehouse representa una bodega o ubicación física donde se guardan ítems.
// IsActive=false equivale a una bodega deshabilitada (no se borra).
type Warehouse struct {
	ID        int64
	Name      string  // único entre todas las bodegas, activas o no
	Location  *string // texto libre opcional
	CreatedAt time.Time
	IsActive  bool
}
