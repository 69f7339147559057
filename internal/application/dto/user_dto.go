package dto

import "time"

// RegisterRequest body para POST /api/register (alta pública sin permisos).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest body para POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUserRequest body para POST /api/users (solo administradores,
// permite asignar permisos en el alta).
type CreateUserRequest struct {
	Username           string `json:"username"`
	Password           string `json:"password"`
	IsAdmin            bool   `json:"is_admin"`
	CanDefineProducts  bool   `json:"can_define_products"`
	CanViewReports     bool   `json:"can_view_reports"`
	CanManageInventory bool   `json:"can_manage_inventory"`
}

// UpdateUserRequest body para PUT /api/users/:id. Campos en nil no cambian.
type UpdateUserRequest struct {
	Password           *string `json:"password,omitempty"`
	IsAdmin            *bool   `json:"is_admin,omitempty"`
	CanDefineProducts  *bool   `json:"can_define_products,omitempty"`
	CanViewReports     *bool   `json:"can_view_reports,omitempty"`
	CanManageInventory *bool   `json:"can_manage_inventory,omitempty"`
}

// UserResponse representación pública de una cuenta (sin hash).
type UserResponse struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	IsAdmin            bool      `json:"is_admin"`
	CanDefineProducts  bool      `json:"can_define_products"`
	CanViewReports     bool      `json:"can_view_reports"`
	CanManageInventory bool      `json:"can_manage_inventory"`
	CreatedAt          time.Time `json:"created_at"`
}

// LoginResponse token más usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
