package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos of Proveedor.
const (
	ProveedorDistribuidor = "DISTRIBUIDOR"
	ProveedorFabricante   = "FABRICANTE"
	ProveedorImportador   = "IMPORTADOR"
	ProveedorMayorista    = "MAYORISTA"
	ProveedorMinorista    = "MINORISTA"
)

// Estados of a Proveedor.
const (
	ProveedorActivo     = "ACTIVO"
	ProveedorInactivo   = "INACTIVO"
	ProveedorPremium    = "PREMIUM"
	ProveedorSuspendido = "SUSPENDIDO"
)

// Proveedor is a standalone supplier: no Usuario/Persona link, no login.
type Proveedor struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"not null"`
	NIT             string    `gorm:"column:nit;uniqueIndex;not null"`
	TipoProveedor   string    `gorm:"type:varchar(20);not null"`
	Telefono        *string
	Email           *string
	Pais            *string
	Ciudad          *string
	Direccion       *string
	PersonaContacto *string
	CargoContacto   *string
	CondicionesPago *string
	DiasCredito     int `gorm:"not null;default:0"`
	// Calificacion is a 0-5 rating
	Calificacion  decimal.Decimal `gorm:"type:numeric(2,1);not null;default:0"`
	Estado        string          `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
	EsPremium     bool            `gorm:"column:es_premium;not null;default:false"`
	Observaciones *string
	FechaRegistro time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
