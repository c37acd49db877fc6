package service

import (
	"context"
	"errors"
	"time"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/infra"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Activar(ctx context.Context, id uuid.UUID) error
	ListarTipos(ctx context.Context) ([]dto.TipoClienteResponse, error)
	Estadisticas(ctx context.Context) (*dto.ClienteStats, error)
	ExportarPDF(ctx context.Context, filter dto.ClienteFilter) (string, error)
}

type clienteService struct {
	clientes   repository.ClienteRepository
	usuarios   repository.UsuarioRepository
	roles      repository.RolRepository
	registro   RegistroService
	permisos   PermisoService
	pdfStorage string
}

func NewClienteService(
	clientes repository.ClienteRepository,
	usuarios repository.UsuarioRepository,
	roles repository.RolRepository,
	registro RegistroService,
	permisos PermisoService,
	pdfStorage string,
) ClienteService {
	return &clienteService{
		clientes: clientes, usuarios: usuarios, roles: roles,
		registro: registro, permisos: permisos, pdfStorage: pdfStorage,
	}
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, error) {
	clientes, err := s.clientes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i, c := range clientes {
		resp[i] = clienteToDTO(c)
	}
	return resp, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("cliente")
		}
		return nil, err
	}
	resp := clienteToDTO(*cliente)
	return &resp, nil
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.registro.CrearCliente(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := clienteToDTO(*cliente)
	return &resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("cliente")
		}
		return nil, err
	}

	if req.TipoCliente != nil {
		tipo, err := s.clientes.FindTipoByCodigo(ctx, *req.TipoCliente)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validacion("tipo_cliente", "tipo de cliente desconocido: "+*req.TipoCliente)
			}
			return nil, err
		}
		cliente.TipoClienteID = tipo.ID
		cliente.TipoCliente = *tipo
	}
	if req.NIT != nil {
		existe, err := s.clientes.ExistsNIT(ctx, *req.NIT, cliente.ID)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, conflicto("el NIT ya esta registrado")
		}
		cliente.NIT = req.NIT
	}
	if req.RazonSocial != nil {
		cliente.RazonSocial = req.RazonSocial
	}
	if req.Ciudad != nil {
		cliente.Ciudad = req.Ciudad
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if req.Especialidad != nil {
		cliente.Especialidad = req.Especialidad
	}
	if req.Estado != nil {
		cliente.Estado = *req.Estado
	}
	if req.EsVIP != nil {
		cliente.EsVIP = *req.EsVIP
	}
	if req.LimiteCredito != nil {
		cliente.LimiteCredito = *req.LimiteCredito
	}
	if req.DescuentoEspecial != nil {
		cliente.DescuentoEspecial = *req.DescuentoEspecial
	}
	if req.Observaciones != nil {
		cliente.Observaciones = req.Observaciones
	}

	if err := s.clientes.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// Eliminar is a soft delete with cascade: the Cliente goes INACTIVO, its
// Usuario loses login and every ACTIVO role assignment goes INACTIVO.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("cliente")
		}
		return err
	}

	txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		if err := s.clientes.SetEstado(ctx, tx, id, model.ClienteInactivo); err != nil {
			return err
		}
		if err := s.usuarios.SetActive(ctx, tx, cliente.UsuarioID, false); err != nil {
			return err
		}
		return s.roles.DesactivarTodosTx(tx, cliente.UsuarioID)
	})
	if txErr != nil {
		return txErr
	}
	s.permisos.InvalidarUsuario(ctx, cliente.UsuarioID)
	return nil
}

// Activar restores the Cliente and its Usuario login. Role assignments
// stay INACTIVO until reassigned.
func (s *clienteService) Activar(ctx context.Context, id uuid.UUID) error {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("cliente")
		}
		return err
	}

	txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		if err := s.clientes.SetEstado(ctx, tx, id, model.ClienteActivo); err != nil {
			return err
		}
		return s.usuarios.SetActive(ctx, tx, cliente.UsuarioID, true)
	})
	if txErr != nil {
		return txErr
	}
	s.permisos.InvalidarUsuario(ctx, cliente.UsuarioID)
	return nil
}

func (s *clienteService) ListarTipos(ctx context.Context) ([]dto.TipoClienteResponse, error) {
	tipos, err := s.clientes.ListTipos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoClienteResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = dto.TipoClienteResponse{
			ID:          t.ID.String(),
			Codigo:      t.Codigo,
			NombreTipo:  t.NombreTipo,
			Descripcion: t.Descripcion,
		}
	}
	return resp, nil
}

func (s *clienteService) Estadisticas(ctx context.Context) (*dto.ClienteStats, error) {
	return s.clientes.Stats(ctx)
}

func (s *clienteService) ExportarPDF(ctx context.Context, filter dto.ClienteFilter) (string, error) {
	clientes, err := s.clientes.List(ctx, filter)
	if err != nil {
		return "", err
	}
	return infra.GenerateClientesPDF(clientes, s.pdfStorage)
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func clienteToDTO(c model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:              c.ID.String(),
		UsuarioID:       c.UsuarioID.String(),
		NombreUsuario:   c.Usuario.NombreUsuario,
		NombreCompleto:  c.Usuario.NombreCompleto(),
		CedulaIdentidad: c.Usuario.Persona.CedulaIdentidad,
		NumeroCelular:   c.Usuario.Persona.NumeroCelular,
		Correo:          c.Usuario.Persona.Correo,
		TipoCliente: dto.TipoClienteResponse{
			ID:          c.TipoCliente.ID.String(),
			Codigo:      c.TipoCliente.Codigo,
			NombreTipo:  c.TipoCliente.NombreTipo,
			Descripcion: c.TipoCliente.Descripcion,
		},
		RazonSocial:       c.RazonSocial,
		NIT:               c.NIT,
		Ciudad:            c.Ciudad,
		Direccion:         c.Direccion,
		Especialidad:      c.Especialidad,
		Estado:            c.Estado,
		EsVIP:             c.EsVIP,
		LimiteCredito:     c.LimiteCredito,
		DescuentoEspecial: c.DescuentoEspecial,
		Observaciones:     c.Observaciones,
		FechaRegistro:     c.FechaRegistro.Format(time.RFC3339),
	}
}
