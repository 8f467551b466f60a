package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/config"
	"github.com/dmitrijs2005/guardbox/internal/cryptox"
	"github.com/dmitrijs2005/guardbox/internal/logging"
	"github.com/dmitrijs2005/guardbox/internal/models"
	"github.com/dmitrijs2005/guardbox/internal/repositories/users"
)

// CodeGenerator produces one plaintext verification code. The generator is
// injected so the flow never decides how codes look or where they go.
type CodeGenerator func() (string, error)

// CodeDelivery hands a plaintext code to the out-of-scope delivery channel
// (mail, SMS, console for the demo).
type CodeDelivery func(username, code string)

// DefaultCodeGenerator returns 6-character uppercase codes.
func DefaultCodeGenerator() (string, error) {
	return cryptox.GenerateCode(6)
}

// ResetService drives the emergency password-reset flow:
//
//	Requested -> ChallengeIssued -> Verified -> PasswordReset
//
// with Expired and BadCode as terminal rejections of one step. At most one
// challenge per username is live; issuing a new one replaces the old.
// Challenges are single-use and exist only in memory.
type ResetService struct {
	mu         sync.Mutex
	users      users.Repository
	challenges map[string]*models.Challenge
	validity   time.Duration
	generate   CodeGenerator
	deliver    CodeDelivery
	log        logging.Logger

	// now is a test seam for expiry checks.
	now func() time.Time
}

// NewResetService constructs a ResetService. generate and deliver are the
// injected code-generation and delivery capabilities.
func NewResetService(repo users.Repository, cfg *config.Config, generate CodeGenerator, deliver CodeDelivery, log logging.Logger) *ResetService {
	return &ResetService{
		users:      repo,
		challenges: make(map[string]*models.Challenge),
		validity:   cfg.CodeValidityDuration,
		generate:   generate,
		deliver:    deliver,
		log:        log,
		now:        time.Now,
	}
}

// RequestReset issues a new challenge for username. It fails with
// common.ErrorNotFound if the username is unknown. Only the code's bcrypt
// digest is retained; the plaintext goes to the delivery callback.
func (s *ResetService) RequestReset(ctx context.Context, username string) error {
	if _, err := s.users.Find(ctx, username); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return err
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generating verification code: %w", err)
	}

	digest, err := cryptox.DigestCode(code)
	if err != nil {
		return err
	}

	now := s.now()
	challenge := &models.Challenge{
		ID:         uuid.NewString(),
		UserName:   username,
		CodeDigest: digest,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.validity),
	}

	s.mu.Lock()
	s.challenges[username] = challenge
	s.mu.Unlock()

	s.log.Info(ctx, "reset challenge issued", "challenge_id", challenge.ID)
	s.deliver(username, code)
	return nil
}

// Verify checks a submitted code against the pending challenge.
//
// Failures: common.ErrorSequence when there is no pending challenge (or it
// was already verified), common.ErrorCodeExpired past the expiry (the
// challenge is discarded), common.ErrorBadCode on digest mismatch (the
// challenge and its expiry are left untouched). On success the challenge
// transitions to verified and cannot be verified again.
func (s *ResetService) Verify(ctx context.Context, username, submittedCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[username]
	if !ok || challenge.Verified {
		return common.ErrorSequence
	}

	if s.now().After(challenge.ExpiresAt) {
		delete(s.challenges, username)
		return common.ErrorCodeExpired
	}

	if !cryptox.CheckCode(challenge.CodeDigest, submittedCode) {
		return common.ErrorBadCode
	}

	challenge.Verified = true
	s.log.Info(ctx, "reset challenge verified", "challenge_id", challenge.ID)
	return nil
}

// CompleteReset sets a new password for username, bypassing normal login.
// It is only callable after a successful Verify in the same flow instance;
// otherwise it fails with common.ErrorSequence. The challenge is discarded
// whether or not the write succeeds.
func (s *ResetService) CompleteReset(ctx context.Context, username, newPassword string) error {
	s.mu.Lock()
	challenge, ok := s.challenges[username]
	if !ok || !challenge.Verified {
		s.mu.Unlock()
		return common.ErrorSequence
	}
	delete(s.challenges, username)
	s.mu.Unlock()

	user, err := s.users.Find(ctx, username)
	if err != nil {
		return err
	}

	user.PasswordHash = cryptox.HashPassword(newPassword)
	if err := s.users.Upsert(ctx, user); err != nil {
		return err
	}

	s.log.Info(ctx, "password reset completed", "challenge_id", challenge.ID)
	return nil
}
