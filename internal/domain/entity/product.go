package entity

import "time"

// DefaultCategory categoría asignada cuando el request no trae una.
const DefaultCategory = "General"

// Product representa un producto del establecimiento.
// El stock no vive aquí: se deriva de los movimientos (ver Balance).
type Product struct {
	ID        string
	Name      string // único; comparación case-insensitive
	Category  string
	CreatedAt time.Time
}
