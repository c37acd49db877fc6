package repository

import (
	"context"
	"errors"

	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RolRepository interface {
	FindByNombre(ctx context.Context, nombre string) (*model.Rol, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rol, error)
	List(ctx context.Context) ([]model.Rol, error)
	ListActivosDeUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.UsuarioRol, error)
	AsignarTx(tx *gorm.DB, ur *model.UsuarioRol) error
	DesactivarTodosTx(tx *gorm.DB, usuarioID uuid.UUID) error
	ActivarOAsignarTx(tx *gorm.DB, usuarioID, rolID uuid.UUID) error
}

type rolRepo struct{ db *gorm.DB }

func NewRolRepository(db *gorm.DB) RolRepository { return &rolRepo{db: db} }

func (r *rolRepo) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).Where("nombre_rol = ?", nombre).First(&rol).Error
	return &rol, err
}

func (r *rolRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).First(&rol, id).Error
	return &rol, err
}

func (r *rolRepo) List(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	err := r.db.WithContext(ctx).Order("nombre_rol").Find(&roles).Error
	return roles, err
}

// ListActivosDeUsuario returns the ACTIVO role assignments ordered by
// assignment date, oldest first. Consumers that need a single role take
// the first element.
func (r *rolRepo) ListActivosDeUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.UsuarioRol, error) {
	var asignaciones []model.UsuarioRol
	err := r.db.WithContext(ctx).
		Preload("Rol").
		Where("usuario_id = ? AND estado = ?", usuarioID, model.EstadoActivo).
		Order("fecha_asignacion ASC").
		Find(&asignaciones).Error
	return asignaciones, err
}

func (r *rolRepo) AsignarTx(tx *gorm.DB, ur *model.UsuarioRol) error {
	return tx.Create(ur).Error
}

func (r *rolRepo) DesactivarTodosTx(tx *gorm.DB, usuarioID uuid.UUID) error {
	return tx.Model(&model.UsuarioRol{}).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.EstadoActivo).
		Update("estado", model.EstadoInactivo).Error
}

// ActivarOAsignarTx reactivates an existing (usuario, rol) assignment or
// creates it. The unique index on the pair means a previous INACTIVO row
// must be reused rather than duplicated.
func (r *rolRepo) ActivarOAsignarTx(tx *gorm.DB, usuarioID, rolID uuid.UUID) error {
	var existente model.UsuarioRol
	err := tx.Where("usuario_id = ? AND rol_id = ?", usuarioID, rolID).First(&existente).Error
	if err == nil {
		return tx.Model(&existente).Update("estado", model.EstadoActivo).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&model.UsuarioRol{
		UsuarioID: usuarioID,
		RolID:     rolID,
		Estado:    model.EstadoActivo,
	}).Error
}
