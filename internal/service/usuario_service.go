package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsuarioService interface {
	Listar(ctx context.Context, filter dto.UsuarioFilter) ([]dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Activar(ctx context.Context, id uuid.UUID) error
	Estadisticas(ctx context.Context) (*dto.UsuarioStats, error)
}

type usuarioService struct {
	usuarios repository.UsuarioRepository
	roles    repository.RolRepository
	registro RegistroService
	permisos PermisoService
}

func NewUsuarioService(
	usuarios repository.UsuarioRepository,
	roles repository.RolRepository,
	registro RegistroService,
	permisos PermisoService,
) UsuarioService {
	return &usuarioService{usuarios: usuarios, roles: roles, registro: registro, permisos: permisos}
}

func (s *usuarioService) Listar(ctx context.Context, filter dto.UsuarioFilter) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(usuarios))
	for i, u := range usuarios {
		resp[i] = usuarioToDTO(u)
	}
	return resp, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("usuario")
		}
		return nil, err
	}
	resp := usuarioToDTO(*usuario)
	return &resp, nil
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.registro.CrearUsuario(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := usuarioToDTO(*usuario)
	return &resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("usuario")
		}
		return nil, err
	}

	persona := usuario.Persona
	if req.Nombre != nil {
		persona.Nombre = model.NormalizarNombre(*req.Nombre)
	}
	if req.ApellidoPaterno != nil {
		persona.ApellidoPaterno = model.NormalizarNombre(*req.ApellidoPaterno)
	}
	if req.ApellidoMaterno != nil {
		n := model.NormalizarNombre(*req.ApellidoMaterno)
		persona.ApellidoMaterno = &n
	}
	if req.NumeroCelular != nil {
		n := model.NormalizarCelular(*req.NumeroCelular)
		if !model.CelularValido(n) {
			return nil, validacion("numero_celular", "celular invalido: 8 digitos comenzando en 6 o 7")
		}
		persona.NumeroCelular = &n
	}
	if req.Correo != nil {
		correo := model.NormalizarCorreo(*req.Correo)
		existe, err := s.usuarios.ExistsCorreo(ctx, correo, persona.ID)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, conflicto("el correo ya esta registrado")
		}
		persona.Correo = &correo
	}
	if err := s.usuarios.UpdatePersona(ctx, &persona); err != nil {
		return nil, err
	}

	if req.Password != nil {
		if motivo := model.PasswordFuerte(*req.Password); motivo != "" {
			return nil, validacion("password", motivo)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		if err := s.usuarios.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}

	if req.Rol != nil {
		rol, err := s.roles.FindByNombre(ctx, *req.Rol)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validacion("rol", "rol desconocido: "+*req.Rol)
			}
			return nil, err
		}
		txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
			if err := s.roles.DesactivarTodosTx(tx, id); err != nil {
				return err
			}
			return s.roles.ActivarOAsignarTx(tx, id, rol.ID)
		})
		if txErr != nil {
			return nil, txErr
		}
		s.permisos.InvalidarUsuario(ctx, id)
	}

	return s.Obtener(ctx, id)
}

// Desactivar flips IsActive off and cascades: every ACTIVO role assignment
// becomes INACTIVO, so the effective permission set resolves to empty.
func (s *usuarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("usuario")
		}
		return err
	}
	txErr := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		if err := s.usuarios.SetActive(ctx, tx, id, false); err != nil {
			return err
		}
		return s.roles.DesactivarTodosTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}
	s.permisos.InvalidarUsuario(ctx, id)
	return nil
}

// Activar re-enables the account. Role assignments are NOT restored: a
// reactivated user has no permissions until someone assigns a role again.
func (s *usuarioService) Activar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("usuario")
		}
		return err
	}
	if err := s.usuarios.SetActive(ctx, nil, id, true); err != nil {
		return err
	}
	s.permisos.InvalidarUsuario(ctx, id)
	return nil
}

func (s *usuarioService) Estadisticas(ctx context.Context) (*dto.UsuarioStats, error) {
	return s.usuarios.Stats(ctx)
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

// rolActivoDe picks the oldest ACTIVO assignment from a preloaded Usuario.
func rolActivoDe(u model.Usuario) *string {
	activos := make([]model.UsuarioRol, 0, len(u.Roles))
	for _, ur := range u.Roles {
		if ur.Estado == model.EstadoActivo {
			activos = append(activos, ur)
		}
	}
	if len(activos) == 0 {
		return nil
	}
	sort.Slice(activos, func(i, j int) bool {
		return activos[i].FechaAsignacion.Before(activos[j].FechaAsignacion)
	})
	nombre := activos[0].Rol.NombreRol
	return &nombre
}

func usuarioToDTO(u model.Usuario) dto.UsuarioResponse {
	rol := rolActivoDe(u)
	sucursal := ""
	if rol != nil {
		sucursal = model.Sucursal(*rol)
	}
	var ultimoLogin *string
	if u.UltimoLogin != nil {
		f := u.UltimoLogin.Format(time.RFC3339)
		ultimoLogin = &f
	}
	return dto.UsuarioResponse{
		ID:              u.ID.String(),
		NombreUsuario:   u.NombreUsuario,
		Nombre:          u.Persona.Nombre,
		ApellidoPaterno: u.Persona.ApellidoPaterno,
		ApellidoMaterno: u.Persona.ApellidoMaterno,
		NombreCompleto:  u.NombreCompleto(),
		CedulaIdentidad: u.Persona.CedulaIdentidad,
		NumeroCelular:   u.Persona.NumeroCelular,
		Correo:          u.Persona.Correo,
		Rol:             rol,
		Sucursal:        sucursal,
		Activo:          u.IsActive,
		UltimoLogin:     ultimoLogin,
		FechaCreacion:   u.CreatedAt.Format(time.RFC3339),
	}
}
