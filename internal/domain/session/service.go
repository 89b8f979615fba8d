package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mednexus/hms/internal/domain/registry"
	"github.com/mednexus/hms/internal/platform/auth"
)

var (
	// ErrUnknownRole is returned when login names a role outside the
	// known set.
	ErrUnknownRole = errors.New("unknown role")
	// ErrNoUserForRole is returned when no account exists for the
	// requested role.
	ErrNoUserForRole = errors.New("no user for role")
)

// Service drives the session lifecycle. Authentication is simulated:
// signing in as a role picks the demo account registered for it.
type Service struct {
	users     registry.UserRepository
	hospitals registry.HospitalRepository
	store     Store
	codec     *auth.TokenCodec
}

func NewService(users registry.UserRepository, hospitals registry.HospitalRepository, store Store, codec *auth.TokenCodec) *Service {
	return &Service{users: users, hospitals: hospitals, store: store, codec: codec}
}

// Login starts a session for the demo account holding role, returning
// the signed token the client carries afterwards. The session's active
// hospital starts as the account's home hospital, falling back to the
// first known hospital.
func (s *Service) Login(ctx context.Context, role registry.Role) (string, *Session, error) {
	if !role.Valid() {
		return "", nil, ErrUnknownRole
	}

	user, err := s.users.FindByRole(ctx, role)
	if errors.Is(err, registry.ErrNotFound) {
		return "", nil, ErrNoUserForRole
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	hospitalID := user.HospitalID
	if hospitalID == "" {
		hosps, err := s.hospitals.List(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("login: %w", err)
		}
		if len(hosps) > 0 {
			hospitalID = hosps[0].ID
		}
	}

	sess := &Session{
		ID:         uuid.NewString(),
		User:       *user,
		HospitalID: hospitalID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Set(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.codec.Issue(sess.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("Session started")
	return token, sess, nil
}

// Restore resolves the session a token refers to. A malformed token, or
// one whose session has expired or been removed, yields (nil, nil): the
// caller is simply signed out.
func (s *Service) Restore(ctx context.Context, token string) (*Session, error) {
	id, ok := s.codec.Parse(token)
	if !ok {
		return nil, nil
	}
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return sess, nil
}

// Logout ends the session a token refers to. Logging out twice, or
// with a token that never resolved, succeeds silently.
func (s *Service) Logout(ctx context.Context, token string) error {
	id, ok := s.codec.Parse(token)
	if !ok {
		return nil
	}
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// SelectHospital switches the session's active hospital. Patients have
// no hospital selector.
func (s *Service) SelectHospital(ctx context.Context, sess *Session, hospitalID string) (*Session, error) {
	if sess.User.Role == registry.RolePatient {
		return nil, errors.New("patients cannot switch hospitals")
	}
	if _, err := s.hospitals.GetByID(ctx, hospitalID); err != nil {
		return nil, fmt.Errorf("select hospital: %w", err)
	}

	updated := *sess
	updated.HospitalID = hospitalID
	if err := s.store.Set(ctx, &updated); err != nil {
		return nil, fmt.Errorf("select hospital: %w", err)
	}
	return &updated, nil
}
