package sync

import "context"

// Callback is the two-branch completion contract exposed to UI layers.
// Only strings cross this boundary: the consumer renders the message in a
// status toast and has no use for structured codes.
type Callback struct {
	OnSuccess func()
	OnFailure func(message string)
}

// done dispatches the result of an operation onto the callback.
func (cb Callback) done(err error) {
	if err != nil {
		if cb.OnFailure != nil {
			cb.OnFailure(err.Error())
		}
		return
	}
	if cb.OnSuccess != nil {
		cb.OnSuccess()
	}
}

// PreflightAsync runs Preflight without blocking the caller and reports
// through cb.
func (s *Service) PreflightAsync(ctx context.Context, cb Callback) {
	go func() { cb.done(s.Preflight(ctx)) }()
}

// BackupAsync runs Backup without blocking the caller and reports through cb.
func (s *Service) BackupAsync(ctx context.Context, localUserID int64, cb Callback) {
	go func() { cb.done(s.Backup(ctx, localUserID)) }()
}

// RestoreAsync runs Restore without blocking the caller and reports through cb.
func (s *Service) RestoreAsync(ctx context.Context, localUserID int64, cb Callback) {
	go func() { cb.done(s.Restore(ctx, localUserID)) }()
}
