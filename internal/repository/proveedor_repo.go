package repository

import (
	"context"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context, filter dto.ProveedorFilter) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SetEstado(ctx context.Context, id uuid.UUID, estado string) error
	ExistsNIT(ctx context.Context, nit string, excluir uuid.UUID) (bool, error)
	Stats(ctx context.Context) (*dto.ProveedorStats, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context, filter dto.ProveedorFilter) ([]model.Proveedor, error) {
	q := r.db.WithContext(ctx).Model(&model.Proveedor{})

	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where(`nombre ILIKE ? OR nit ILIKE ? OR persona_contacto ILIKE ?`,
			like, like, like)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo_proveedor = ?", filter.Tipo)
	}
	if filter.SoloPremium {
		q = q.Where("es_premium = true")
	}

	var proveedores []model.Proveedor
	err := q.Order("nombre").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) SetEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).
		Where("id = ?", id).Update("estado", estado).Error
}

func (r *proveedorRepo) ExistsNIT(ctx context.Context, nit string, excluir uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("nit = ?", nit)
	if excluir != uuid.Nil {
		q = q.Where("id <> ?", excluir)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *proveedorRepo) Stats(ctx context.Context) (*dto.ProveedorStats, error) {
	var stats dto.ProveedorStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Proveedor{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Proveedor{}).
		Where("estado = ?", model.ProveedorActivo).Count(&stats.Activos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Proveedor{}).
		Where("es_premium = true").Count(&stats.Premium).Error; err != nil {
		return nil, err
	}

	rows, err := db.Model(&model.Proveedor{}).
		Select("tipo_proveedor AS tipo, COUNT(*) AS cantidad").
		Group("tipo_proveedor").
		Order("cantidad DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats.PorTipo = map[string]int64{}
	for rows.Next() {
		var tipo string
		var cantidad int64
		if err := rows.Scan(&tipo, &cantidad); err != nil {
			return nil, err
		}
		stats.PorTipo[tipo] = cantidad
	}
	return &stats, rows.Err()
}
