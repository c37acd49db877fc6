// Package seed creates the fixed catalogs the system expects at startup:
// roles, the permission catalog, role-permission grants and client types.
// Every insert is idempotent (FirstOrCreate), so running it on every boot
// is safe.
package seed

import (
	"errors"

	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type permisoSeed struct {
	Codigo      string
	Modulo      string
	Tipo        string
	Descripcion string
}

var permisos = []permisoSeed{
	{"VER_PRODUCTOS", model.ModuloProductos, model.PermisoVer, "Ver listado de productos"},
	{"CREAR_PRODUCTOS", model.ModuloProductos, model.PermisoCrear, "Crear nuevos productos"},
	{"EDITAR_PRODUCTOS", model.ModuloProductos, model.PermisoEditar, "Editar productos existentes"},
	{"ELIMINAR_PRODUCTOS", model.ModuloProductos, model.PermisoEliminar, "Eliminar productos"},

	{"VER_INVENTARIO", model.ModuloInventario, model.PermisoVer, "Ver inventario"},
	{"EDITAR_INVENTARIO", model.ModuloInventario, model.PermisoEditar, "Ajustar inventario"},
	{"EXPORTAR_INVENTARIO", model.ModuloInventario, model.PermisoExportar, "Exportar reportes de inventario"},

	{"VER_VENTAS", model.ModuloVentas, model.PermisoVer, "Ver historial de ventas"},
	{"CREAR_VENTAS", model.ModuloVentas, model.PermisoCrear, "Realizar ventas"},
	{"ELIMINAR_VENTAS", model.ModuloVentas, model.PermisoEliminar, "Anular ventas"},

	{"VER_TRANSFERENCIAS", model.ModuloTransferencias, model.PermisoVer, "Ver transferencias"},
	{"CREAR_TRANSFERENCIAS", model.ModuloTransferencias, model.PermisoCrear, "Crear transferencias"},
	{"EDITAR_TRANSFERENCIAS", model.ModuloTransferencias, model.PermisoEditar, "Modificar transferencias"},

	{"VER_CLIENTES", model.ModuloClientes, model.PermisoVer, "Ver clientes"},
	{"CREAR_CLIENTES", model.ModuloClientes, model.PermisoCrear, "Registrar clientes"},
	{"EDITAR_CLIENTES", model.ModuloClientes, model.PermisoEditar, "Editar clientes"},

	{"VER_REPORTES", model.ModuloReportes, model.PermisoVer, "Ver reportes"},
	{"EXPORTAR_REPORTES", model.ModuloReportes, model.PermisoExportar, "Exportar reportes"},

	{"VER_USUARIOS", model.ModuloUsuarios, model.PermisoVer, "Ver usuarios"},
	{"CREAR_USUARIOS", model.ModuloUsuarios, model.PermisoCrear, "Crear usuarios"},
	{"EDITAR_USUARIOS", model.ModuloUsuarios, model.PermisoEditar, "Editar usuarios"},
	{"ELIMINAR_USUARIOS", model.ModuloUsuarios, model.PermisoEliminar, "Eliminar usuarios"},

	{"VER_CONFIGURACION", model.ModuloConfiguracion, model.PermisoVer, "Ver configuracion"},
	{"EDITAR_CONFIGURACION", model.ModuloConfiguracion, model.PermisoEditar, "Modificar configuracion"},
}

var roles = []model.Rol{
	{NombreRol: model.RolAdministrador, Descripcion: ptr("Administrador con acceso completo al sistema")},
	{NombreRol: model.RolVendedorRoydent, Descripcion: ptr("Vendedor de la sucursal RoyDent")},
	{NombreRol: model.RolVendedorMundoMedico, Descripcion: ptr("Vendedor de la sucursal Mundo Medico")},
	{NombreRol: model.RolCliente, Descripcion: ptr("Cliente con acceso limitado al catalogo")},
}

// permisosVendedor is the reduced set granted to both seller roles.
var permisosVendedor = []string{
	"VER_PRODUCTOS", "VER_INVENTARIO", "VER_VENTAS", "CREAR_VENTAS",
	"VER_CLIENTES", "CREAR_CLIENTES", "EDITAR_CLIENTES",
	"VER_TRANSFERENCIAS", "CREAR_TRANSFERENCIAS",
	"VER_REPORTES",
}

type tipoSeed struct {
	Codigo      string
	Nombre      string
	Descripcion string
}

var tiposCliente = []tipoSeed{
	{"PARTICULAR", "Particular", "Cliente sin ocupacion registrada"},
	{"ODONTOLOGO", "Odontologo", "Profesional en odontologia"},
	{"MEDICO", "Medico", "Profesional en medicina general o especializada"},
	{"EST_ODONTOLOGIA", "Estudiante Odontologia", "Estudiante de la carrera de odontologia"},
	{"EST_MEDICINA", "Estudiante Medicina", "Estudiante de la carrera de medicina"},
	{"EST_ENFERMERIA", "Estudiante Enfermeria", "Estudiante de la carrera de enfermeria"},
	{"EST_VETERINARIA", "Estudiante Veterinaria", "Estudiante de la carrera de veterinaria"},
	{"ENFERMERO", "Enfermero/a", "Profesional en enfermeria"},
	{"VETERINARIO", "Veterinario/a", "Profesional en veterinaria"},
	{"LAB_DENTAL", "Laboratorio Dental", "Laboratorio tecnico dental"},
}

// Run seeds roles, permisos, grants and tipos de cliente.
func Run(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedPermisos(db); err != nil {
		return err
	}
	if err := seedGrants(db); err != nil {
		return err
	}
	if err := seedTipos(db); err != nil {
		return err
	}
	log.Info().Msg("seed completado")
	return nil
}

func seedRoles(db *gorm.DB) error {
	for _, r := range roles {
		rol := model.Rol{NombreRol: r.NombreRol}
		if err := db.Where(model.Rol{NombreRol: r.NombreRol}).
			Attrs(model.Rol{Descripcion: r.Descripcion}).
			FirstOrCreate(&rol).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedPermisos(db *gorm.DB) error {
	for _, p := range permisos {
		permiso := model.Permiso{CodigoPermiso: p.Codigo}
		if err := db.Where(model.Permiso{CodigoPermiso: p.Codigo}).
			Attrs(model.Permiso{
				NombrePermiso: p.Descripcion,
				Modulo:        p.Modulo,
				TipoPermiso:   p.Tipo,
				Descripcion:   &p.Descripcion,
			}).
			FirstOrCreate(&permiso).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedGrants(db *gorm.DB) error {
	// ADMINISTRADOR gets the whole catalog.
	var admin model.Rol
	if err := db.Where("nombre_rol = ?", model.RolAdministrador).First(&admin).Error; err != nil {
		return err
	}
	var todos []model.Permiso
	if err := db.Find(&todos).Error; err != nil {
		return err
	}
	for _, p := range todos {
		if err := grant(db, admin.ID, p.ID); err != nil {
			return err
		}
	}

	// Both seller roles get the reduced set. CLIENTE gets nothing.
	for _, nombre := range []string{model.RolVendedorRoydent, model.RolVendedorMundoMedico} {
		var rol model.Rol
		if err := db.Where("nombre_rol = ?", nombre).First(&rol).Error; err != nil {
			return err
		}
		for _, codigo := range permisosVendedor {
			var p model.Permiso
			if err := db.Where("codigo_permiso = ?", codigo).First(&p).Error; err != nil {
				return err
			}
			if err := grant(db, rol.ID, p.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func grant(db *gorm.DB, rolID, permisoID uuid.UUID) error {
	var rp model.RolPermiso
	err := db.Where("rol_id = ? AND permiso_id = ?", rolID, permisoID).First(&rp).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&model.RolPermiso{RolID: rolID, PermisoID: permisoID}).Error
}

func seedTipos(db *gorm.DB) error {
	for _, t := range tiposCliente {
		tipo := model.TipoCliente{Codigo: t.Codigo}
		if err := db.Where(model.TipoCliente{Codigo: t.Codigo}).
			Attrs(model.TipoCliente{NombreTipo: t.Nombre, Descripcion: &t.Descripcion}).
			FirstOrCreate(&tipo).Error; err != nil {
			return err
		}
	}
	return nil
}

func ptr(s string) *string { return &s }
