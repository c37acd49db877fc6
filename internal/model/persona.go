package model

import (
	"time"

	"github.com/google/uuid"
)

// Persona holds the biographical record behind every system account.
// It is created once during registration and only mutated by profile
// edits; rows are never deleted, only referenced.
type Persona struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"not null"`
	ApellidoPaterno string    `gorm:"not null"`
	ApellidoMaterno *string
	// CedulaIdentidad is stored normalized (trimmed, upper): 1234567 or 1234567-LP
	CedulaIdentidad string  `gorm:"uniqueIndex;not null"`
	NumeroCelular   *string `gorm:"type:varchar(8)"`
	// Correo is normalized to lowercase; unique when present
	Correo    *string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Persona) TableName() string { return "personas" }

// NombreCompleto joins nombre and apellidos, skipping the optional materno.
func (p *Persona) NombreCompleto() string {
	full := p.Nombre + " " + p.ApellidoPaterno
	if p.ApellidoMaterno != nil && *p.ApellidoMaterno != "" {
		full += " " + *p.ApellidoMaterno
	}
	return full
}
