package repository

import (
	"context"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	CreateTx(tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SetEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	ExistsNIT(ctx context.Context, nit string, excluir uuid.UUID) (bool, error)
	Stats(ctx context.Context) (*dto.ClienteStats, error)

	FindTipoByID(ctx context.Context, id uuid.UUID) (*model.TipoCliente, error)
	FindTipoByCodigo(ctx context.Context, codigo string) (*model.TipoCliente, error)
	FirstOrCreateTipoTx(tx *gorm.DB, codigo, nombre string) (*model.TipoCliente, error)
	ListTipos(ctx context.Context) ([]model.TipoCliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) CreateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Usuario.Persona").
		Preload("TipoCliente").
		First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Usuario.Persona").
		Preload("TipoCliente").
		Where("usuario_id = ?", usuarioID).
		First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Cliente{}).
		Preload("Usuario.Persona").
		Preload("TipoCliente").
		Joins("JOIN usuarios ON usuarios.id = clientes.usuario_id").
		Joins("JOIN personas ON personas.id = usuarios.persona_id")

	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where(`personas.nombre ILIKE ? OR personas.apellido_paterno ILIKE ?
			OR personas.apellido_materno ILIKE ? OR personas.cedula_identidad ILIKE ?
			OR clientes.nit ILIKE ?`, like, like, like, like, like)
	}
	if filter.Estado != "" {
		q = q.Where("clientes.estado = ?", filter.Estado)
	}
	if filter.TipoCliente != "" {
		q = q.Joins("JOIN tipos_cliente ON tipos_cliente.id = clientes.tipo_cliente_id").
			Where("tipos_cliente.codigo = ?", filter.TipoCliente)
	}
	if filter.SoloVIP {
		q = q.Where("clientes.es_vip = true")
	}
	if filter.Ciudad != "" {
		q = q.Where("clientes.ciudad ILIKE ?", filter.Ciudad)
	}

	var clientes []model.Cliente
	err := q.Order("clientes.fecha_registro DESC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SetEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Model(&model.Cliente{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *clienteRepo) ExistsNIT(ctx context.Context, nit string, excluir uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("nit = ?", nit)
	if excluir != uuid.Nil {
		q = q.Where("id <> ?", excluir)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *clienteRepo) Stats(ctx context.Context) (*dto.ClienteStats, error) {
	var stats dto.ClienteStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Cliente{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Cliente{}).
		Where("estado = ?", model.ClienteActivo).Count(&stats.Activos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Cliente{}).
		Where("es_vip = true").Count(&stats.VIP).Error; err != nil {
		return nil, err
	}

	rows, err := db.Model(&model.Cliente{}).
		Select("tipos_cliente.nombre_tipo AS tipo, COUNT(*) AS cantidad").
		Joins("JOIN tipos_cliente ON tipos_cliente.id = clientes.tipo_cliente_id").
		Group("tipos_cliente.nombre_tipo").
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

func (r *clienteRepo) FindTipoByID(ctx context.Context, id uuid.UUID) (*model.TipoCliente, error) {
	var t model.TipoCliente
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *clienteRepo) FindTipoByCodigo(ctx context.Context, codigo string) (*model.TipoCliente, error) {
	var t model.TipoCliente
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&t).Error
	return &t, err
}

func (r *clienteRepo) FirstOrCreateTipoTx(tx *gorm.DB, codigo, nombre string) (*model.TipoCliente, error) {
	var t model.TipoCliente
	err := tx.Where(model.TipoCliente{Codigo: codigo}).
		Attrs(model.TipoCliente{NombreTipo: nombre}).
		FirstOrCreate(&t).Error
	return &t, err
}

func (r *clienteRepo) ListTipos(ctx context.Context) ([]model.TipoCliente, error) {
	var tipos []model.TipoCliente
	err := r.db.WithContext(ctx).Order("nombre_tipo").Find(&tipos).Error
	return tipos, err
}
