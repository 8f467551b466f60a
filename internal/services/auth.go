package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/guardbox/internal/auth"
	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/config"
	"github.com/dmitrijs2005/guardbox/internal/cryptox"
	"github.com/dmitrijs2005/guardbox/internal/logging"
	"github.com/dmitrijs2005/guardbox/internal/models"
	"github.com/dmitrijs2005/guardbox/internal/repositories/users"
)

// Session is the authenticated identity used to authorize session
// operations. Token is a signed proof of the identity.
type Session struct {
	UserName string
	Role     models.Role
	Token    string
}

// IsAdmin reports whether the session may perform admin-gated operations.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// AuthService validates credentials against the credential store and
// consults the protection tracker before touching it.
type AuthService struct {
	users     users.Repository
	tracker   *ProtectionTracker
	secretKey []byte
	cfg       *config.Config
	log       logging.Logger
}

// NewAuthService constructs an AuthService using the credential repository,
// the protection tracker, and server config.
func NewAuthService(repo users.Repository, tracker *ProtectionTracker, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		users:     repo,
		tracker:   tracker,
		secretKey: []byte(cfg.SecretKey),
		cfg:       cfg,
		log:       log,
	}
}

// Login runs one authentication attempt:
//
//	check freeze status -> check credentials -> session
//
// A frozen account fails with *common.FrozenError without touching the
// credential store. An unknown username and a wrong password both fail
// with common.ErrorBadCredential so the two are indistinguishable; either
// failure counts toward the freeze threshold. Storage errors are surfaced
// unmodified and do not count as failed attempts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	if st := s.tracker.Status(username); st.Frozen {
		s.log.Warn(ctx, "login rejected, account frozen", "remaining", st.Remaining)
		return nil, &common.FrozenError{Remaining: st.Remaining}
	}

	user, err := s.users.Find(ctx, username)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if err != nil || !cryptox.CheckPassword(user.PasswordHash, password) {
		st := s.tracker.RecordFailure(username)
		if st.Frozen {
			s.log.Warn(ctx, "account frozen after repeated failures", "remaining", st.Remaining)
			return nil, &common.FrozenError{Remaining: st.Remaining}
		}
		return nil, fmt.Errorf("%w (%d attempts left)", common.ErrorBadCredential, st.AttemptsLeft)
	}

	s.tracker.RecordSuccess(username)

	token, err := auth.GenerateToken(user.UserName, user.Role, s.secretKey, s.cfg.SessionValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	s.log.Info(ctx, "user logged in", "role", user.Role)
	return &Session{UserName: user.UserName, Role: user.Role, Token: token}, nil
}
