package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados of a role assignment.
const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// UsuarioRol joins Usuario and Rol. A pair is unique; deactivation keeps
// the row and flips Estado so a later reactivation of the user does not
// silently restore stale grants.
type UsuarioRol struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usuario_rol"`
	RolID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usuario_rol"`
	Rol             Rol       `gorm:"foreignKey:RolID"`
	Estado          string    `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
	FechaAsignacion time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time
}

func (UsuarioRol) TableName() string { return "usuario_roles" }
