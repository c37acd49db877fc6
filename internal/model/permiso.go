package model

import (
	"time"

	"github.com/google/uuid"
)

// Modulos a permission can apply to.
const (
	ModuloProductos      = "PRODUCTOS"
	ModuloInventario     = "INVENTARIO"
	ModuloVentas         = "VENTAS"
	ModuloTransferencias = "TRANSFERENCIAS"
	ModuloClientes       = "CLIENTES"
	ModuloReportes       = "REPORTES"
	ModuloUsuarios       = "USUARIOS"
	ModuloConfiguracion  = "CONFIGURACION"
)

// Tipos of permission.
const (
	PermisoVer      = "VER"
	PermisoCrear    = "CREAR"
	PermisoEditar   = "EDITAR"
	PermisoEliminar = "ELIMINAR"
	PermisoExportar = "EXPORTAR"
	PermisoImportar = "IMPORTAR"
)

// Permiso is an atomic (modulo, tipo) capability, e.g. (PRODUCTOS, VER).
// CodigoPermiso is the short code routes are gated on, e.g. VER_PRODUCTOS.
type Permiso struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombrePermiso string    `gorm:"uniqueIndex;not null"`
	CodigoPermiso string    `gorm:"uniqueIndex;not null"`
	Modulo        string    `gorm:"not null;uniqueIndex:idx_modulo_tipo"`
	TipoPermiso   string    `gorm:"not null;uniqueIndex:idx_modulo_tipo"`
	Descripcion   *string
	CreatedAt     time.Time
}

func (Permiso) TableName() string { return "permisos" }

// RolPermiso grants a Permiso to a Rol, recording who granted it and when.
type RolPermiso struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RolID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rol_permiso"`
	PermisoID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rol_permiso"`
	Permiso         Permiso    `gorm:"foreignKey:PermisoID"`
	AsignadoPorID   *uuid.UUID `gorm:"type:uuid"`
	FechaAsignacion time.Time  `gorm:"autoCreateTime"`
}

func (RolPermiso) TableName() string { return "rol_permisos" }
