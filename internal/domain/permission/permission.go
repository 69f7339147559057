package permission

import "github.com/jmcastano/almacen-api/internal/domain/entity"

// Capability identifica una operación protegida del sistema.
type Capability string

const (
	ManageUsers     Capability = "manage_users"
	DefineProducts  Capability = "define_products"
	ViewReports     Capability = "view_reports"
	ManageInventory Capability = "manage_inventory"
)

// Flags son los cuatro permisos de una cuenta tal como viajan en el token.
type Flags struct {
	IsAdmin            bool
	CanDefineProducts  bool
	CanViewReports     bool
	CanManageInventory bool
}

// FromUser extrae los flags de una cuenta persistida.
func FromUser(u *entity.User) Flags {
	return Flags{
		IsAdmin:            u.IsAdmin,
		CanDefineProducts:  u.CanDefineProducts,
		CanViewReports:     u.CanViewReports,
		CanManageInventory: u.CanManageInventory,
	}
}

// Set devuelve el conjunto de capacidades de la cuenta como tabla única.
// IsAdmin otorga el conjunto completo: ManageUsers solo existe por esa vía.
func Set(f Flags) map[Capability]bool {
	if f.IsAdmin {
		return map[Capability]bool{
			ManageUsers:     true,
			DefineProducts:  true,
			ViewReports:     true,
			ManageInventory: true,
		}
	}
	return map[Capability]bool{
		DefineProducts:  f.CanDefineProducts,
		ViewReports:     f.CanViewReports,
		ManageInventory: f.CanManageInventory,
	}
}

// Allowed indica si los flags permiten la capacidad pedida.
func Allowed(f Flags, c Capability) bool {
	return Set(f)[c]
}
