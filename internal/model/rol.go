package model

import (
	"time"

	"github.com/google/uuid"
)

// Fixed role names. The set is closed: seeding creates exactly these four.
const (
	RolAdministrador       = "ADMINISTRADOR"
	RolVendedorRoydent     = "VENDEDOR_ROYDENT"
	RolVendedorMundoMedico = "VENDEDOR_MUNDO_MEDICO"
	RolCliente             = "CLIENTE"
)

// Rol is a named permission-carrying group.
type Rol struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreRol   string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Permisos []RolPermiso `gorm:"foreignKey:RolID"`
}

func (Rol) TableName() string { return "roles" }

// Sucursal returns the branch a role operates in. Derived, never stored.
// CLIENTE (and any unknown role) maps to "".
func Sucursal(nombreRol string) string {
	switch nombreRol {
	case RolAdministrador:
		return "deposito"
	case RolVendedorRoydent:
		return "roydent"
	case RolVendedorMundoMedico:
		return "mundo_medico"
	default:
		return ""
	}
}
