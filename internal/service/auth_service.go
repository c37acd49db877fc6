package service

import (
	"context"
	"errors"
	"time"

	"github.com/AnnCris/ROYDENT/internal/config"
	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Perfil(ctx context.Context, usuarioID uuid.UUID) (*dto.PerfilResponse, error)
	ActualizarPerfil(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.PerfilResponse, error)
	CambiarPassword(ctx context.Context, usuarioID uuid.UUID, req dto.CambiarPasswordRequest) error
}

type authService struct {
	usuarios repository.UsuarioRepository
	roles    repository.RolRepository
	permisos PermisoService
	cfg      *config.Config
}

func NewAuthService(usuarios repository.UsuarioRepository, roles repository.RolRepository, permisos PermisoService, cfg *config.Config) AuthService {
	return &authService{usuarios: usuarios, roles: roles, permisos: permisos, cfg: cfg}
}

// Login never reveals whether the username exists or the password failed:
// both cases answer ErrCredenciales. A correct password against a
// deactivated account answers ErrCuentaDesactivada instead.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByUsername(ctx, model.NormalizarUsuario(req.NombreUsuario))
	if err != nil {
		return nil, ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}
	if !usuario.IsActive {
		return nil, ErrCuentaDesactivada
	}

	if err := s.usuarios.UpdateUltimoLogin(ctx, usuario.ID); err != nil {
		log.Warn().Err(err).Str("usuario_id", usuario.ID.String()).Msg("no se pudo actualizar ultimo_login")
	}

	return s.buildLoginResponse(ctx, usuario.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalido
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrTokenInvalido
	}
	uid, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrTokenInvalido
	}

	usuario, err := s.usuarios.FindByID(ctx, uid)
	if err != nil {
		return nil, ErrTokenInvalido
	}
	if !usuario.IsActive {
		return nil, ErrCuentaDesactivada
	}

	return s.buildLoginResponse(ctx, usuario.ID)
}

func (s *authService) Perfil(ctx context.Context, usuarioID uuid.UUID) (*dto.PerfilResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("usuario")
		}
		return nil, err
	}
	return s.buildPerfil(ctx, usuario)
}

func (s *authService) ActualizarPerfil(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.PerfilResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
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
		normalizado := model.NormalizarNombre(*req.ApellidoMaterno)
		persona.ApellidoMaterno = &normalizado
	}
	if req.NumeroCelular != nil {
		normalizado := model.NormalizarCelular(*req.NumeroCelular)
		persona.NumeroCelular = &normalizado
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
	usuario.Persona = persona
	return s.buildPerfil(ctx, usuario)
}

func (s *authService) CambiarPassword(ctx context.Context, usuarioID uuid.UUID, req dto.CambiarPasswordRequest) error {
	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noEncontrado("usuario")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.PasswordActual)); err != nil {
		return validacion("password_actual", "la contrasena actual es incorrecta")
	}
	if motivo := model.PasswordFuerte(req.PasswordNueva); motivo != "" {
		return validacion("password_nueva", motivo)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNueva), 12)
	if err != nil {
		return err
	}
	return s.usuarios.UpdatePassword(ctx, usuarioID, string(hash))
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *authService) buildLoginResponse(ctx context.Context, usuarioID uuid.UUID) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	perfil, err := s.buildPerfil(ctx, usuario)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.generateToken(usuario, perfil, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(usuario, perfil, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Usuario:      *perfil,
	}, nil
}

func (s *authService) buildPerfil(ctx context.Context, usuario *model.Usuario) (*dto.PerfilResponse, error) {
	return perfilDeUsuario(ctx, s.roles, s.permisos, usuario)
}

// perfilDeUsuario assembles the profile view: persona data, the oldest
// ACTIVO role (the role shown to single-role consumers), its derived
// sucursal and the resolved permission set.
func perfilDeUsuario(ctx context.Context, roles repository.RolRepository, permisos PermisoService, usuario *model.Usuario) (*dto.PerfilResponse, error) {
	asignaciones, err := roles.ListActivosDeUsuario(ctx, usuario.ID)
	if err != nil {
		return nil, err
	}
	var rol *string
	sucursal := ""
	if len(asignaciones) > 0 {
		nombre := asignaciones[0].Rol.NombreRol
		rol = &nombre
		sucursal = model.Sucursal(nombre)
	}

	codigos, err := permisos.ResolverCodigos(ctx, usuario.ID)
	if err != nil {
		return nil, err
	}

	var ultimoLogin *string
	if usuario.UltimoLogin != nil {
		formateado := usuario.UltimoLogin.Format(time.RFC3339)
		ultimoLogin = &formateado
	}

	return &dto.PerfilResponse{
		ID:              usuario.ID.String(),
		NombreUsuario:   usuario.NombreUsuario,
		Nombre:          usuario.Persona.Nombre,
		ApellidoPaterno: usuario.Persona.ApellidoPaterno,
		ApellidoMaterno: usuario.Persona.ApellidoMaterno,
		NombreCompleto:  usuario.NombreCompleto(),
		CedulaIdentidad: usuario.Persona.CedulaIdentidad,
		NumeroCelular:   usuario.Persona.NumeroCelular,
		Correo:          usuario.Persona.Correo,
		Rol:             rol,
		Sucursal:        sucursal,
		Permisos:        codigos,
		Activo:          usuario.IsActive,
		UltimoLogin:     ultimoLogin,
	}, nil
}

func (s *authService) generateToken(usuario *model.Usuario, perfil *dto.PerfilResponse, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  usuario.ID.String(),
		"username": usuario.NombreUsuario,
		"sucursal": perfil.Sucursal,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	if perfil.Rol != nil {
		claims["rol"] = *perfil.Rol
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
