package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/logging"
	"github.com/dmitrijs2005/guardbox/internal/models"
	"github.com/dmitrijs2005/guardbox/internal/repositories/vault"
)

// VaultService exposes the protected-data operations. Every operation acts
// on the session owner's own record; there is no cross-user access.
type VaultService struct {
	vault vault.Repository
	log   logging.Logger
}

// NewVaultService constructs a VaultService over the protected-data
// repository.
func NewVaultService(repo vault.Repository, log logging.Logger) *VaultService {
	return &VaultService{vault: repo, log: log}
}

// AddNote appends a note to the session owner's record, creating the
// record lazily.
func (s *VaultService) AddNote(ctx context.Context, actor *Session, content string) (models.Note, error) {
	if actor == nil {
		return models.Note{}, common.ErrorPermissionDenied
	}
	if content == "" {
		return models.Note{}, fmt.Errorf("%w: note must not be empty", common.ErrorValidation)
	}

	note, err := s.vault.AppendNote(ctx, actor.UserName, content)
	if err != nil {
		return models.Note{}, err
	}

	s.log.Info(ctx, "note added")
	return note, nil
}

// Notes returns the session owner's notes in insertion order; an empty
// slice when the owner has no data yet.
func (s *VaultService) Notes(ctx context.Context, actor *Session) ([]models.Note, error) {
	if actor == nil {
		return nil, common.ErrorPermissionDenied
	}
	return s.vault.ListNotes(ctx, actor.UserName)
}

// AddFileRef appends a metadata-only file reference to the session owner's
// record.
func (s *VaultService) AddFileRef(ctx context.Context, actor *Session, name string) (models.FileRef, error) {
	if actor == nil {
		return models.FileRef{}, common.ErrorPermissionDenied
	}
	if name == "" {
		return models.FileRef{}, fmt.Errorf("%w: file name must not be empty", common.ErrorValidation)
	}

	ref, err := s.vault.AppendFileRef(ctx, actor.UserName, name)
	if err != nil {
		return models.FileRef{}, err
	}

	s.log.Info(ctx, "file reference added")
	return ref, nil
}

// FileRefs returns the session owner's file references in insertion order.
func (s *VaultService) FileRefs(ctx context.Context, actor *Session) ([]models.FileRef, error) {
	if actor == nil {
		return nil, common.ErrorPermissionDenied
	}
	return s.vault.ListFileRefs(ctx, actor.UserName)
}
