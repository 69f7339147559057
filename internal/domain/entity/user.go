package entity

import "time"

// User representa una cuenta del sistema con sus cuatro permisos independientes.
// IsAdmin subsume al resto (ver internal/domain/permission).
// Invariante global: siempre existe al menos una cuenta con IsAdmin.
type User struct {
	ID                 string
	Username           string // único; comparación case-insensitive, almacenamiento case-preserving
	PasswordHash       string // bcrypt hash, nunca plano en dominio después de persistir
	IsAdmin            bool
	CanDefineProducts  bool
	CanViewReports     bool
	CanManageInventory bool
	CreatedAt          time.Time
}
