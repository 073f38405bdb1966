package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/triplogapp/triplog-server/internal/domain"
	apperrors "github.com/triplogapp/triplog-server/internal/errors"
	"github.com/triplogapp/triplog-server/internal/id"
	"github.com/triplogapp/triplog-server/internal/remote"
)

// Restore rebuilds the user's trips from the remote backup into the local
// store. Inserts are append-only: nothing local is deleted or merged, and
// restoring twice duplicates the trips.
//
// Each restored trip fans out three independent child-collection reads.
// A failure in one child collection is logged and skipped rather than
// failing the restore: partial data back on the device beats total
// failure. The trip-level listing and inserts still gate the result.
func (s *Service) Restore(ctx context.Context, localUserID int64) error {
	log := s.logger.With("sync_id", id.MustGenerate("sync"), "local_user", localUserID)

	uid, err := s.resolver.RemoteUserID(ctx)
	if err != nil {
		return err
	}

	docs, err := s.remote.List(ctx, remote.TripsCollection(uid))
	if err != nil {
		return fmt.Errorf("list remote trips: %w", err)
	}

	// A crashed preflight can leave its marker behind; it is not a trip.
	trips := docs[:0]
	for _, doc := range docs {
		if doc.ID == remote.PreflightDocID {
			continue
		}
		trips = append(trips, doc)
	}
	if len(trips) == 0 {
		return apperrors.NoData("no backup data found for this user")
	}

	log.Info("restore started", "remote_user", uid, "trips", len(trips))

	var childTasks []task
	restored := 0
	for _, doc := range trips {
		trip := tripFromDocument(localUserID, doc)
		if err := s.local.CreateTrip(ctx, trip); err != nil {
			log.Warn("skipping trip: local insert failed", "doc_id", doc.ID, "error", err)
			continue
		}
		restored++
		childTasks = append(childTasks, s.buildRestoreChildTasks(uid, doc.ID, trip, log)...)
	}
	if restored == 0 {
		return apperrors.Internalf("restore failed: none of %d trips could be inserted locally", len(trips))
	}

	// Child failures are logged, never aggregated into the result.
	for _, o := range failedOutcomes(gather(ctx, childTasks)) {
		log.Warn("child collection restore failed", "path", o.label, "error", o.err)
	}

	log.Info("restore complete", "trips", restored)
	return nil
}

// buildRestoreChildTasks creates the three independent fan-out reads for
// one restored trip. remoteKey addresses the child collections under the
// original remote document; trip.ID is the (possibly reassigned) local id
// the children bind to.
func (s *Service) buildRestoreChildTasks(uid, remoteKey string, trip *domain.Trip, log *slog.Logger) []task {
	schedulesPath := remote.ChildCollectionKey(uid, remoteKey, remote.KindSchedules)
	expensesPath := remote.ChildCollectionKey(uid, remoteKey, remote.KindExpenses)
	capturesPath := remote.ChildCollectionKey(uid, remoteKey, remote.KindCaptures)

	return []task{
		{label: schedulesPath, run: func(ctx context.Context) error {
			docs, err := s.remote.List(ctx, schedulesPath)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				if err := s.local.CreateSchedule(ctx, scheduleFromDocument(trip.ID, doc)); err != nil {
					log.Warn("schedule insert failed", "trip_id", trip.ID, "doc_id", doc.ID, "error", err)
				}
			}
			return nil
		}},
		{label: expensesPath, run: func(ctx context.Context) error {
			docs, err := s.remote.List(ctx, expensesPath)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				if err := s.local.CreateExpense(ctx, expenseFromDocument(trip.ID, doc)); err != nil {
					log.Warn("expense insert failed", "trip_id", trip.ID, "doc_id", doc.ID, "error", err)
				}
			}
			return nil
		}},
		{label: capturesPath, run: func(ctx context.Context) error {
			docs, err := s.remote.List(ctx, capturesPath)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				if err := s.local.CreateCapture(ctx, captureFromDocument(trip.ID, trip.UserID, doc)); err != nil {
					log.Warn("capture insert failed", "trip_id", trip.ID, "doc_id", doc.ID, "error", err)
				}
			}
			return nil
		}},
	}
}
