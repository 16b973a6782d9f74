// Package roles implements the business side of the roles API: profile
// reads, role switching and dashboard resolution.
package roles

import (
	"context"
	"errors"
	"fmt"

	dto "github.com/pondokdigital/pesantren-api/internal/http/dto/roles"
	"github.com/pondokdigital/pesantren-api/internal/menu"
	"github.com/pondokdigital/pesantren-api/internal/metrics"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
	"github.com/pondokdigital/pesantren-api/internal/profile"
	"github.com/pondokdigital/pesantren-api/internal/rbac"
)

// Service defines the roles API operations.
type Service interface {
	Me(ctx context.Context, userID string) (*dto.MeResponse, error)
	Switch(ctx context.Context, userID, rawRole string) (*dto.SwitchResponse, error)
	DashboardRedirect(ctx context.Context, userID string) (*dto.DashboardRedirectResponse, error)
	Menu(ctx context.Context, userID string) (*dto.MenuResponse, error)
}

// Deps contains dependencies for the roles service.
type Deps struct {
	Store profile.Store
}

type service struct {
	deps Deps
}

// NewService creates a roles Service.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// Service errors. The controller maps these to wire errors.
var (
	ErrRoleRequired    = errors.New("roles: role is required")
	ErrProfileNotFound = errors.New("roles: profile not found")
)

// RoleNotAssignedError: the requested role is not in the caller's assigned
// set. Carries the assigned set so the client can offer valid choices.
type RoleNotAssignedError struct {
	Requested rbac.Role
	Available []rbac.Role
}

func (e *RoleNotAssignedError) Error() string {
	return fmt.Sprintf("roles: role %q not assigned", e.Requested)
}

func (s *service) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	p, err := s.loadProfile(ctx, userID, "Me")
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		Roles:      rbac.Strings(p.Roles),
		ActiveRole: string(p.ActiveRole),
		Nama:       p.Nama,
	}, nil
}

func (s *service) Switch(ctx context.Context, userID, rawRole string) (*dto.SwitchResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("roles"),
		logger.Op("Switch"),
		logger.UserID(userID),
	)

	target := rbac.Normalize(rawRole)
	if target == "" {
		return nil, ErrRoleRequired
	}

	// Unknown tags are not special-cased: they can never be in the
	// assigned set, so the membership check below rejects them with the
	// assigned roles attached.
	p, err := s.deps.Store.SwitchActiveRole(ctx, userID, target)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNotFound):
			return nil, ErrProfileNotFound
		case errors.Is(err, profile.ErrRoleNotAssigned):
			metrics.IncRoleSwitch(string(target), "rejected")
			// re-read for the assigned set; the switch itself already failed
			available := []rbac.Role{}
			if cur, gerr := s.deps.Store.GetByUserID(ctx, userID); gerr == nil {
				available = cur.Roles
			}
			log.Info("role switch rejected", logger.Role(string(target)))
			return nil, &RoleNotAssignedError{Requested: target, Available: available}
		default:
			log.Error("role switch failed", logger.Err(err))
			return nil, err
		}
	}

	metrics.IncRoleSwitch(string(target), "ok")
	log.Info("role switched",
		logger.ActiveRole(string(p.ActiveRole)),
		logger.Roles(rbac.Strings(p.Roles)),
	)

	return &dto.SwitchResponse{
		Success:    true,
		ActiveRole: string(p.ActiveRole),
		Message:    fmt.Sprintf("Role berhasil diubah ke %s", p.ActiveRole),
	}, nil
}

func (s *service) DashboardRedirect(ctx context.Context, userID string) (*dto.DashboardRedirectResponse, error) {
	p, err := s.loadProfile(ctx, userID, "DashboardRedirect")
	if err != nil {
		return nil, err
	}
	return &dto.DashboardRedirectResponse{
		ActiveRole:   string(p.ActiveRole),
		RedirectPath: rbac.DashboardPath(p.ActiveRole),
	}, nil
}

func (s *service) Menu(ctx context.Context, userID string) (*dto.MenuResponse, error) {
	p, err := s.loadProfile(ctx, userID, "Menu")
	if err != nil {
		return nil, err
	}
	items := menu.VisibleTo(p.ActiveRole)
	return &dto.MenuResponse{Items: items}, nil
}

func (s *service) loadProfile(ctx context.Context, userID, op string) (*profile.Profile, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("roles"),
		logger.Op(op),
		logger.UserID(userID),
	)

	p, err := s.deps.Store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			log.Debug("profile not found")
			return nil, ErrProfileNotFound
		}
		log.Error("profile read failed", logger.Err(err))
		return nil, err
	}
	return p, nil
}
