package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados of a Cliente.
const (
	ClienteActivo     = "ACTIVO"
	ClienteInactivo   = "INACTIVO"
	ClienteVIP        = "VIP"
	ClienteSuspendido = "SUSPENDIDO"
)

// TipoCliente enumerates client professions/occupations (ODONTOLOGO,
// MEDICO, laboratorios, estudiantes...). Seeded at startup.
type TipoCliente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	NombreTipo  string    `gorm:"not null"`
	Descripcion *string
	CreatedAt   time.Time
}

func (TipoCliente) TableName() string { return "tipos_cliente" }

// Cliente wraps a Usuario with commercial attributes.
type Cliente struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null"`
	Usuario       Usuario     `gorm:"foreignKey:UsuarioID"`
	TipoClienteID uuid.UUID   `gorm:"type:uuid;not null"`
	TipoCliente   TipoCliente `gorm:"foreignKey:TipoClienteID"`
	RazonSocial   *string
	NIT           *string `gorm:"column:nit;uniqueIndex"`
	Ciudad        *string
	Direccion     *string
	Especialidad  *string
	Estado        string          `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
	EsVIP         bool            `gorm:"column:es_vip;not null;default:false"`
	LimiteCredito decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	// DescuentoEspecial is a percentage, 0-100
	DescuentoEspecial decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	Observaciones     *string
	FechaRegistro     time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time
}

func (Cliente) TableName() string { return "clientes" }
