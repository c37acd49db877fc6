package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/AnnCris/ROYDENT/internal/dto"
	"github.com/AnnCris/ROYDENT/internal/model"
	"github.com/AnnCris/ROYDENT/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	permisoCachePrefix = "permisos:usuario:"
	permisoCacheTTL    = 10 * time.Minute
)

type PermisoService interface {
	// ResolverCodigos returns the union of permission codes over the user's
	// ACTIVO roles. An empty slice means "no permissions", not an error;
	// an unknown usuarioID is ErrNoEncontrado.
	ResolverCodigos(ctx context.Context, usuarioID uuid.UUID) ([]string, error)
	TienePermiso(ctx context.Context, usuarioID uuid.UUID, codigo string) (bool, error)
	ListarCatalogo(ctx context.Context) ([]dto.PermisoResponse, error)
	ListarRoles(ctx context.Context) ([]dto.RolResponse, error)
	PermisosDeRol(ctx context.Context, rolID uuid.UUID) (*dto.RolPermisosResponse, error)
	ActualizarPermisosDeRol(ctx context.Context, rolID uuid.UUID, req dto.ActualizarPermisosRolRequest, asignadoPor uuid.UUID) (*dto.RolPermisosResponse, error)
	Matriz(ctx context.Context) (*dto.MatrizPermisosResponse, error)
	InvalidarUsuario(ctx context.Context, usuarioID uuid.UUID)
}

type permisoService struct {
	usuarios repository.UsuarioRepository
	permisos repository.PermisoRepository
	roles    repository.RolRepository
	rdb      *redis.Client
}

func NewPermisoService(usuarios repository.UsuarioRepository, permisos repository.PermisoRepository, roles repository.RolRepository, rdb *redis.Client) PermisoService {
	return &permisoService{usuarios: usuarios, permisos: permisos, roles: roles, rdb: rdb}
}

func (s *permisoService) ResolverCodigos(ctx context.Context, usuarioID uuid.UUID) ([]string, error) {
	if codigos, ok := s.cacheGet(ctx, usuarioID); ok {
		return codigos, nil
	}

	// The join below cannot tell an unknown user from one with zero roles:
	// only the latter resolves to the empty set.
	if _, err := s.usuarios.FindByID(ctx, usuarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("usuario")
		}
		return nil, err
	}

	codigos, err := s.permisos.ListCodigosDeUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, usuarioID, codigos)
	return codigos, nil
}

func (s *permisoService) TienePermiso(ctx context.Context, usuarioID uuid.UUID, codigo string) (bool, error) {
	codigos, err := s.ResolverCodigos(ctx, usuarioID)
	if err != nil {
		return false, err
	}
	for _, c := range codigos {
		if c == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (s *permisoService) ListarCatalogo(ctx context.Context) ([]dto.PermisoResponse, error) {
	permisos, err := s.permisos.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PermisoResponse, len(permisos))
	for i, p := range permisos {
		resp[i] = permisoToDTO(p)
	}
	return resp, nil
}

func (s *permisoService) ListarRoles(ctx context.Context) ([]dto.RolResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RolResponse, len(roles))
	for i, r := range roles {
		resp[i] = rolToDTO(r)
	}
	return resp, nil
}

func (s *permisoService) PermisosDeRol(ctx context.Context, rolID uuid.UUID) (*dto.RolPermisosResponse, error) {
	rol, err := s.roles.FindByID(ctx, rolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("rol")
		}
		return nil, err
	}
	grants, err := s.permisos.ListByRol(ctx, rolID)
	if err != nil {
		return nil, err
	}
	resp := &dto.RolPermisosResponse{Rol: rolToDTO(*rol), Permisos: make([]dto.PermisoResponse, len(grants))}
	for i, g := range grants {
		resp.Permisos[i] = permisoToDTO(g.Permiso)
	}
	return resp, nil
}

func (s *permisoService) ActualizarPermisosDeRol(ctx context.Context, rolID uuid.UUID, req dto.ActualizarPermisosRolRequest, asignadoPor uuid.UUID) (*dto.RolPermisosResponse, error) {
	if _, err := s.roles.FindByID(ctx, rolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("rol")
		}
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.PermisoIDs))
	for _, raw := range req.PermisoIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, validacion("permiso_ids", "id de permiso invalido: "+raw)
		}
		ids = append(ids, id)
	}
	existentes, err := s.permisos.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(existentes) != len(ids) {
		return nil, validacion("permiso_ids", "uno o mas permisos no existen")
	}

	granter := &asignadoPor
	if asignadoPor == uuid.Nil {
		granter = nil
	}
	if err := s.permisos.ReplaceForRol(ctx, rolID, ids, granter); err != nil {
		return nil, err
	}

	// Grant sets changed for every user holding the role; drop all cached
	// permission sets rather than tracking who holds what.
	s.cacheFlush(ctx)

	return s.PermisosDeRol(ctx, rolID)
}

func (s *permisoService) Matriz(ctx context.Context) (*dto.MatrizPermisosResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	catalogo, err := s.ListarCatalogo(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.MatrizPermisosResponse{
		Roles:    make([]dto.RolResponse, len(roles)),
		Permisos: catalogo,
		Matriz:   map[string][]string{},
	}
	for i, r := range roles {
		resp.Roles[i] = rolToDTO(r)
		grants, err := s.permisos.ListByRol(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		codigos := make([]string, len(grants))
		for j, g := range grants {
			codigos[j] = g.Permiso.CodigoPermiso
		}
		resp.Matriz[r.NombreRol] = codigos
	}
	return resp, nil
}

// ─── Cache helpers ───────────────────────────────────────────────────────────

func (s *permisoService) cacheGet(ctx context.Context, usuarioID uuid.UUID) ([]string, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, permisoCachePrefix+usuarioID.String()).Result()
	if err != nil {
		return nil, false
	}
	var codigos []string
	if err := json.Unmarshal([]byte(raw), &codigos); err != nil {
		return nil, false
	}
	return codigos, true
}

func (s *permisoService) cacheSet(ctx context.Context, usuarioID uuid.UUID, codigos []string) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(codigos)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, permisoCachePrefix+usuarioID.String(), raw, permisoCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo cachear permisos")
	}
}

func (s *permisoService) InvalidarUsuario(ctx context.Context, usuarioID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, permisoCachePrefix+usuarioID.String()).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar cache de permisos")
	}
}

func (s *permisoService) cacheFlush(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, permisoCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("no se pudo borrar clave de cache")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("scan de cache de permisos fallo")
	}
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func permisoToDTO(p model.Permiso) dto.PermisoResponse {
	return dto.PermisoResponse{
		ID:            p.ID.String(),
		NombrePermiso: p.NombrePermiso,
		CodigoPermiso: p.CodigoPermiso,
		Modulo:        p.Modulo,
		TipoPermiso:   p.TipoPermiso,
		Descripcion:   p.Descripcion,
	}
}

func rolToDTO(r model.Rol) dto.RolResponse {
	return dto.RolResponse{
		ID:          r.ID.String(),
		NombreRol:   r.NombreRol,
		Descripcion: r.Descripcion,
		Sucursal:    model.Sucursal(r.NombreRol),
	}
}
