package repository

import (
	"context"

	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermisoRepository interface {
	List(ctx context.Context) ([]model.Permiso, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Permiso, error)
	ListCodigosDeUsuario(ctx context.Context, usuarioID uuid.UUID) ([]string, error)
	ListByRol(ctx context.Context, rolID uuid.UUID) ([]model.RolPermiso, error)
	ReplaceForRol(ctx context.Context, rolID uuid.UUID, permisoIDs []uuid.UUID, asignadoPor *uuid.UUID) error
}

type permisoRepo struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) PermisoRepository { return &permisoRepo{db: db} }

func (r *permisoRepo) List(ctx context.Context) ([]model.Permiso, error) {
	var permisos []model.Permiso
	err := r.db.WithContext(ctx).Order("modulo, tipo_permiso").Find(&permisos).Error
	return permisos, err
}

func (r *permisoRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Permiso, error) {
	var permisos []model.Permiso
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&permisos).Error
	return permisos, err
}

// ListCodigosDeUsuario resolves the effective permission set: the union of
// permission codes reachable through the user's ACTIVO role assignments.
// An empty slice is a valid result, not an error.
func (r *permisoRepo) ListCodigosDeUsuario(ctx context.Context, usuarioID uuid.UUID) ([]string, error) {
	codigos := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.Permiso{}).
		Distinct("permisos.codigo_permiso").
		Joins("JOIN rol_permisos ON rol_permisos.permiso_id = permisos.id").
		Joins("JOIN usuario_roles ON usuario_roles.rol_id = rol_permisos.rol_id").
		Where("usuario_roles.usuario_id = ? AND usuario_roles.estado = ?", usuarioID, model.EstadoActivo).
		Order("permisos.codigo_permiso").
		Pluck("permisos.codigo_permiso", &codigos).Error
	return codigos, err
}

func (r *permisoRepo) ListByRol(ctx context.Context, rolID uuid.UUID) ([]model.RolPermiso, error) {
	var grants []model.RolPermiso
	err := r.db.WithContext(ctx).
		Preload("Permiso").
		Where("rol_id = ?", rolID).
		Find(&grants).Error
	return grants, err
}

// ReplaceForRol swaps a role's grant set atomically: delete everything,
// insert the new set, all in one transaction.
func (r *permisoRepo) ReplaceForRol(ctx context.Context, rolID uuid.UUID, permisoIDs []uuid.UUID, asignadoPor *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rol_id = ?", rolID).Delete(&model.RolPermiso{}).Error; err != nil {
			return err
		}
		for _, pid := range permisoIDs {
			grant := model.RolPermiso{RolID: rolID, PermisoID: pid, AsignadoPorID: asignadoPor}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
