package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores login credentials, linked 1:1 to a Persona.
// Deleting never removes the row: IsActive flips to false and the
// user's UsuarioRol assignments cascade to INACTIVO.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonaID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Persona   Persona   `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE"`
	// NombreUsuario is stored lowercase: 3-20 chars of [a-z0-9._-]
	NombreUsuario string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	IsActive      bool   `gorm:"not null;default:true"`
	IsStaff       bool   `gorm:"not null;default:false"`
	IsSuperuser   bool   `gorm:"not null;default:false"`
	UltimoLogin   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Roles []UsuarioRol `gorm:"foreignKey:UsuarioID"`
}

func (Usuario) TableName() string { return "usuarios" }

// NombreCompleto delegates to the linked Persona (requires Persona preloaded).
func (u *Usuario) NombreCompleto() string { return u.Persona.NombreCompleto() }
