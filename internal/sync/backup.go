package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/triplogapp/triplog-server/internal/domain"
	apperrors "github.com/triplogapp/triplog-server/internal/errors"
	"github.com/triplogapp/triplog-server/internal/id"
	"github.com/triplogapp/triplog-server/internal/remote"
)

// Backup replicates every local trip of localUserID, with all schedules,
// expenses, and captures, into the user's remote namespace.
//
// All document writes are issued concurrently; a trip write and its
// children's writes may land in any order since every document is
// independently addressable. On any failure the entire task set is rebuilt
// and reissued exactly once: the deterministic keys make the duplicate
// writes harmless overwrites, and reissuing everything avoids tracking
// which specific child failed. Backup never mutates local state.
func (s *Service) Backup(ctx context.Context, localUserID int64) error {
	log := s.logger.With("sync_id", id.MustGenerate("sync"), "local_user", localUserID)

	uid, err := s.resolver.RemoteUserID(ctx)
	if err != nil {
		return err
	}

	trips, err := s.local.ListTripsByUser(ctx, localUserID)
	if err != nil {
		return fmt.Errorf("list local trips: %w", err)
	}
	if len(trips) == 0 {
		return apperrors.NoData("nothing to back up: this user has no trips")
	}

	// Gate on the permission probe; no document writes before it passes.
	if err := s.preflight(ctx, uid, log); err != nil {
		log.Warn("backup aborted by preflight", "error", err)
		return err
	}

	tasks, err := s.buildBackupTasks(ctx, uid, trips)
	if err != nil {
		return err
	}
	log.Info("backup started", "remote_user", uid, "trips", len(trips), "documents", len(tasks))

	outcomes := gather(ctx, tasks)
	failed := failedOutcomes(outcomes)

	if len(failed) > 0 {
		// One retry round, entire set.
		log.Warn("retrying backup", "failed", len(failed), "documents", len(tasks))
		tasks, err = s.buildBackupTasks(ctx, uid, trips)
		if err != nil {
			return err
		}
		outcomes = gather(ctx, tasks)
		failed = failedOutcomes(outcomes)
	}

	if len(failed) > 0 {
		err := s.backupFailure(failed, len(tasks))
		log.Error("backup failed", "failed", len(failed), "error", err)
		return err
	}

	log.Info("backup complete", "documents", len(tasks))
	return nil
}

// buildBackupTasks creates one write task per trip document and per child
// document. Child tasks are built from the same in-memory trips, so every
// child references a trip included in the same pass.
func (s *Service) buildBackupTasks(ctx context.Context, uid string, trips []*domain.Trip) ([]task, error) {
	var tasks []task
	for _, trip := range trips {
		tasks = append(tasks, s.writeTask(uid, remote.TripDoc(uid, trip.ID), tripDoc(trip)))

		schedules, err := s.local.ListSchedules(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("list schedules of trip %d: %w", trip.ID, err)
		}
		for _, sc := range schedules {
			path := remote.ChildDoc(uid, trip.ID, remote.KindSchedules, sc.ID)
			tasks = append(tasks, s.writeTask(uid, path, scheduleDoc(sc)))
		}

		expenses, err := s.local.ListExpenses(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("list expenses of trip %d: %w", trip.ID, err)
		}
		for _, e := range expenses {
			path := remote.ChildDoc(uid, trip.ID, remote.KindExpenses, e.ID)
			tasks = append(tasks, s.writeTask(uid, path, expenseDoc(e)))
		}

		captures, err := s.local.ListCaptures(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("list captures of trip %d: %w", trip.ID, err)
		}
		for _, c := range captures {
			path := remote.ChildDoc(uid, trip.ID, remote.KindCaptures, c.ID)
			tasks = append(tasks, s.writeTask(uid, path, captureDoc(c)))
		}
	}
	return tasks, nil
}

// writeTask creates a document write task paced by the user's rate limit.
func (s *Service) writeTask(uid, path string, data map[string]any) task {
	return task{
		label: path,
		run: func(ctx context.Context) error {
			if err := s.limiter.Wait(ctx, uid); err != nil {
				return err
			}
			return s.remote.Set(ctx, path, data)
		},
	}
}

// backupFailure consolidates the failed outcomes of the retry round into a
// single report. Permission-denied failures are rewritten into actionable
// guidance, since the raw rpc text points nowhere useful; everything else
// keeps its native message.
func (s *Service) backupFailure(failed []outcome, total int) error {
	permissionDenied := false
	msgs := make([]string, 0, len(failed))
	for _, o := range failed {
		if apperrors.Is(o.err, apperrors.ErrPermissionDenied) {
			permissionDenied = true
			msgs = append(msgs, s.permissionGuidance(o.label))
			continue
		}
		msgs = append(msgs, o.err.Error())
	}

	msg := fmt.Sprintf("%d of %d documents failed to sync: %s", len(failed), total, strings.Join(msgs, "; "))
	if permissionDenied {
		return apperrors.PermissionDenied(msg)
	}
	return apperrors.Unavailable(msg)
}

// permissionGuidance names the likely misconfiguration for a denied write.
func (s *Service) permissionGuidance(path string) string {
	return fmt.Sprintf(
		"%s: write denied by the remote security rules; update the Firestore security rules of project %s to allow the signed-in user to write under users/{userId}/trips",
		path, s.projectID)
}
