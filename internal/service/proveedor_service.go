package service

import (
	"context"
	"errors"
	"time"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorService interface {
	Listar(ctx context.Context, filter dto.ProveedorFilter) ([]dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Activar(ctx context.Context, id uuid.UUID) error
	Estadisticas(ctx context.Context) (*dto.ProveedorStats, error)
}

type proveedorService struct {
	proveedores repository.ProveedorRepository
}

func NewProveedorService(proveedores repository.ProveedorRepository) ProveedorService {
	return &proveedorService{proveedores: proveedores}
}

func (s *proveedorService) Listar(ctx context.Context, filter dto.ProveedorFilter) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.proveedores.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, len(proveedores))
	for i, p := range proveedores {
		resp[i] = proveedorToDTO(p)
	}
	return resp, nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.proveedores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("proveedor")
		}
		return nil, err
	}
	resp := proveedorToDTO(*p)
	return &resp, nil
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	existe, err := s.proveedores.ExistsNIT(ctx, req.NIT, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, conflicto("el NIT ya esta registrado")
	}

	p := &model.Proveedor{
		Nombre:          req.Nombre,
		NIT:             req.NIT,
		TipoProveedor:   req.TipoProveedor,
		Telefono:        req.Telefono,
		Email:           req.Email,
		Pais:            req.Pais,
		Ciudad:          req.Ciudad,
		Direccion:       req.Direccion,
		PersonaContacto: req.PersonaContacto,
		CargoContacto:   req.CargoContacto,
		CondicionesPago: req.CondicionesPago,
		DiasCredito:     req.DiasCredito,
		Estado:          model.ProveedorActivo,
		EsPremium:       req.EsPremium,
		Observaciones:   req.Observaciones,
	}
	if req.Calificacion != nil {
		p.Calificacion = *req.Calificacion
	}
	if p.EsPremium {
		p.Estado = model.ProveedorPremium
	}
	if err := s.proveedores.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := proveedorToDTO(*p)
	return &resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.proveedores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("proveedor")
		}
		return nil, err
	}

	if req.NIT != nil {
		existe, err := s.proveedores.ExistsNIT(ctx, *req.NIT, id)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, conflicto("el NIT ya esta registrado")
		}
		p.NIT = *req.NIT
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.TipoProveedor != nil {
		p.TipoProveedor = *req.TipoProveedor
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Pais != nil {
		p.Pais = req.Pais
	}
	if req.Ciudad != nil {
		p.Ciudad = req.Ciudad
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.PersonaContacto != nil {
		p.PersonaContacto = req.PersonaContacto
	}
	if req.CargoContacto != nil {
		p.CargoContacto = req.CargoContacto
	}
	if req.CondicionesPago != nil {
		p.CondicionesPago = req.CondicionesPago
	}
	if req.DiasCredito != nil {
		p.DiasCredito = *req.DiasCredito
	}
	if req.Calificacion != nil {
		p.Calificacion = *req.Calificacion
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if req.EsPremium != nil {
		p.EsPremium = *req.EsPremium
	}
	if req.Observaciones != nil {
		p.Observaciones = req.Observaciones
	}

	if err := s.proveedores.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := proveedorToDTO(*p)
	return &resp, nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.proveedores.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("proveedor")
		}
		return err
	}
	return s.proveedores.SetEstado(ctx, id, model.ProveedorInactivo)
}

func (s *proveedorService) Activar(ctx context.Context, id uuid.UUID) error {
	p, err := s.proveedores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("proveedor")
		}
		return err
	}
	estado := model.ProveedorActivo
	if p.EsPremium {
		estado = model.ProveedorPremium
	}
	return s.proveedores.SetEstado(ctx, id, estado)
}

func (s *proveedorService) Estadisticas(ctx context.Context) (*dto.ProveedorStats, error) {
	return s.proveedores.Stats(ctx)
}

func proveedorToDTO(p model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:              p.ID.String(),
		Nombre:          p.Nombre,
		NIT:             p.NIT,
		TipoProveedor:   p.TipoProveedor,
		Telefono:        p.Telefono,
		Email:           p.Email,
		Pais:            p.Pais,
		Ciudad:          p.Ciudad,
		Direccion:       p.Direccion,
		PersonaContacto: p.PersonaContacto,
		CargoContacto:   p.CargoContacto,
		CondicionesPago: p.CondicionesPago,
		DiasCredito:     p.DiasCredito,
		Calificacion:    p.Calificacion,
		Estado:          p.Estado,
		EsPremium:       p.EsPremium,
		Observaciones:   p.Observaciones,
		FechaRegistro:   p.FechaRegistro.Format(time.RFC3339),
	}
}
