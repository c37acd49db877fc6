package repository

import (
	"context"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	CreatePersonaTx(tx *gorm.DB, p *model.Persona) error
	CreateTx(tx *gorm.DB, u *model.Usuario) error
	FindByUsername(ctx context.Context, nombreUsuario string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, error)
	UpdatePersona(ctx context.Context, p *model.Persona) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateUltimoLogin(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
	ExistsUsername(ctx context.Context, nombreUsuario string) (bool, error)
	ExistsCedula(ctx context.Context, cedula string) (bool, error)
	ExistsCorreo(ctx context.Context, correo string, excluirPersona uuid.UUID) (bool, error)
	Stats(ctx context.Context) (*dto.UsuarioStats, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) DB() *gorm.DB { return r.db }

func (r *usuarioRepo) CreatePersonaTx(tx *gorm.DB, p *model.Persona) error {
	return tx.Create(p).Error
}

func (r *usuarioRepo) CreateTx(tx *gorm.DB, u *model.Usuario) error {
	return tx.Create(u).Error
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, nombreUsuario string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Persona").
		Where("nombre_usuario = ?", nombreUsuario).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Persona").
		Preload("Roles.Rol").
		First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Preload("Persona").
		Preload("Roles.Rol")

	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Joins("JOIN personas ON personas.id = usuarios.persona_id").
			Where(`usuarios.nombre_usuario ILIKE ? OR personas.nombre ILIKE ?
				OR personas.apellido_paterno ILIKE ? OR personas.apellido_materno ILIKE ?
				OR personas.correo ILIKE ?`, like, like, like, like, like)
	}
	switch filter.Estado {
	case "activo":
		q = q.Where("usuarios.is_active = true")
	case "inactivo":
		q = q.Where("usuarios.is_active = false")
	}
	if filter.Rol != "" {
		q = q.Where(`usuarios.id IN (
			SELECT ur.usuario_id FROM usuario_roles ur
			JOIN roles r ON r.id = ur.rol_id
			WHERE r.nombre_rol = ? AND ur.estado = ?)`, filter.Rol, model.EstadoActivo)
	}

	var usuarios []model.Usuario
	err := q.Order("usuarios.created_at DESC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) UpdatePersona(ctx context.Context, p *model.Persona) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *usuarioRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *usuarioRepo) UpdateUltimoLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).Update("ultimo_login", gorm.Expr("NOW()")).Error
}

// SetActive flips the soft-delete flag. Accepts a tx so the Usuario flip and
// the UsuarioRol cascade commit together; pass nil to use the base DB.
func (r *usuarioRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Model(&model.Usuario{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *usuarioRepo) ExistsUsername(ctx context.Context, nombreUsuario string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("LOWER(nombre_usuario) = LOWER(?)", nombreUsuario).Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepo) ExistsCedula(ctx context.Context, cedula string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Persona{}).
		Where("cedula_identidad = ?", cedula).Count(&count).Error
	return count > 0, err
}

// ExistsCorreo checks email uniqueness, optionally excluding one Persona
// (profile edits must not collide with the editor's own row).
func (r *usuarioRepo) ExistsCorreo(ctx context.Context, correo string, excluirPersona uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Persona{}).
		Where("LOWER(correo) = LOWER(?)", correo)
	if excluirPersona != uuid.Nil {
		q = q.Where("id <> ?", excluirPersona)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepo) Stats(ctx context.Context) (*dto.UsuarioStats, error) {
	var stats dto.UsuarioStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Usuario{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Usuario{}).Where("is_active = true").Count(&stats.Activos).Error; err != nil {
		return nil, err
	}
	stats.Inactivos = stats.Total - stats.Activos

	countRol := func(nombres ...string) (int64, error) {
		var n int64
		err := db.Model(&model.UsuarioRol{}).
			Joins("JOIN roles ON roles.id = usuario_roles.rol_id").
			Where("roles.nombre_rol IN ? AND usuario_roles.estado = ?", nombres, model.EstadoActivo).
			Count(&n).Error
		return n, err
	}

	var err error
	if stats.Administradores, err = countRol(model.RolAdministrador); err != nil {
		return nil, err
	}
	if stats.Vendedores, err = countRol(model.RolVendedorRoydent, model.RolVendedorMundoMedico); err != nil {
		return nil, err
	}
	return &stats, nil
}
