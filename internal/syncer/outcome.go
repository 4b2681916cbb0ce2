package syncer

import (
	"context"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/metrics"
	"shopyz-be/internal/realtime"

	"go.uber.org/zap"
)

// Outcome is the result of an optimistic write.
type Outcome int

const (
	AppliedRemotely Outcome = iota
	// AppliedLocallyOnly means the remote rejected the write on permission grounds and
	// the local change was kept.
	AppliedLocallyOnly
	RolledBack
)

func (o Outcome) String() string {
	switch o {
	case AppliedRemotely:
		return "applied_remotely"
	case AppliedLocallyOnly:
		return "applied_locally_only"
	case RolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// Apply runs local against the mirror, then remote. A successful remote write keeps
// the change and a permission rejection keeps it locally. Any other failure rolls the
// mirror back to the remote state: the path is read again, and if that read fails too
// the list as it was is restored unless a subscription delivery replaced it meanwhile.
// The remote error is returned for the last two outcomes.
func Apply[T any](ctx context.Context, m *Mirror[T], local func([]T) []T, remote func(context.Context) error) (Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "syncer"),
		zap.String("method", "Apply"),
		zap.String("path", m.cfg.Path),
	)

	prev, version := m.mutate(local)

	err := remote(ctx)
	outcome := Classify(err)

	switch outcome {
	case AppliedLocallyOnly:
		log.Warn("remote write denied, keeping local change", zap.Error(err))
	case RolledBack:
		log.Error("remote write failed, rolling back", zap.Error(err))
		if rerr := m.reload(ctx); rerr != nil {
			log.Warn("reload after failed write", zap.Error(rerr))
			if !m.restore(prev, version) {
				log.Debug("newer delivery kept over rollback")
			}
		}
	}

	Record(outcome)
	return outcome, err
}

// Classify maps a remote write result to an outcome without touching any mirror.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return AppliedRemotely
	case realtime.IsPermissionDenied(err):
		return AppliedLocallyOnly
	default:
		return RolledBack
	}
}

// Record counts an outcome in the default metrics registry.
func Record(o Outcome) {
	metrics.Default.Counter("sync_" + o.String()).Inc()
}
