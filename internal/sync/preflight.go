package sync

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	apperrors "github.com/triplogapp/triplog-server/internal/errors"
	"github.com/triplogapp/triplog-server/internal/remote"
)

// Preflight verifies write permission to the user's remote trip namespace
// by writing a small marker document and deleting it again. It is used
// both as a standalone diagnostic and as the gate before a full backup.
func (s *Service) Preflight(ctx context.Context) error {
	uid, err := s.resolver.RemoteUserID(ctx)
	if err != nil {
		return err
	}
	return s.preflight(ctx, uid, s.logger)
}

// preflight runs the write+delete probe for an already-resolved identity.
func (s *Service) preflight(ctx context.Context, uid string, log *slog.Logger) error {
	path := remote.PreflightDoc(uid)
	marker := map[string]any{
		"token":     uuid.NewString(),
		"checkedAt": firestore.ServerTimestamp,
	}

	if err := s.remote.Set(ctx, path, marker); err != nil {
		return s.preflightError("write", uid, err)
	}
	if err := s.remote.Delete(ctx, path); err != nil {
		return s.preflightError("delete", uid, err)
	}

	log.Info("preflight check passed", "remote_user", uid, "project", s.projectID)
	return nil
}

// preflightError builds the diagnostic for a failed probe. The dominant
// real-world cause is a security-rule misconfiguration rather than a
// transient outage, so the message names the user and project alongside
// the low-level error text.
func (s *Service) preflightError(verb, uid string, err error) error {
	msg := fmt.Sprintf("preflight %s failed for user %s in project %s: %v", verb, uid, s.projectID, err)
	if apperrors.Is(err, apperrors.ErrPermissionDenied) {
		return apperrors.PermissionDenied(msg)
	}
	return apperrors.Unavailable(msg)
}
