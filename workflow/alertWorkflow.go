package workflow

import (
	"context"
	"time"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("dwellpath-backend")

// AlertSink persists alert drafts. models.GormStore implements it; tests use
// an in-memory fake.
type AlertSink interface {
	CreateAlert(ctx context.Context, draft residency.AlertDraft) error
}

// ProcessIntervalAlert runs after a residency interval write has been
// persisted. It recomputes the affected state's day total and, when the
// warning band plus alert window are crossed, stores an alert and fans the
// event out to the notification topic.
//
// Everything here is best-effort: the interval write already succeeded and
// must stay succeeded, so failures are logged and swallowed. Returns the
// created draft (nil when the state is not in the alert window) so callers
// can surface it in the write response.
func ProcessIntervalAlert(ctx context.Context, logger *logrus.Logger, svc *residency.Service, sink AlertSink, ownerId string, iv residency.Interval) *residency.AlertDraft {
	ctx, span := tracer.Start(ctx, "ProcessIntervalAlert")
	defer span.End()

	// Best-effort per-owner lock to keep concurrent writes from interleaving
	// their evaluations. Correctness never depends on it: the aggregation is
	// commutative and idempotent, so a missed lock at worst duplicates an
	// alert that the next write would have produced anyway.
	if locker := config.GetRedisLock(); locker != nil {
		if lock, err := locker.Obtain(ctx, "alertcheck:"+ownerId, 5*time.Second, nil); err == nil {
			defer lock.Release(ctx)
		}
	}

	draft, err := svc.EvaluateNewInterval(ctx, ownerId, iv)
	if err != nil {
		config.LogError(logger, "alertWorkflow.go", "ProcessIntervalAlert", "EvaluateNewInterval", iv, err)
		return nil
	}
	if draft == nil {
		return nil
	}

	if err := sink.CreateAlert(ctx, *draft); err != nil {
		config.LogError(logger, "alertWorkflow.go", "ProcessIntervalAlert", "CreateAlert", draft, err)
		return draft
	}

	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	msg := config.AlertMessage{
		OwnerId:       draft.OwnerId,
		State:         draft.State,
		Severity:      string(draft.Severity),
		Title:         draft.Title,
		Message:       draft.Message,
		TotalDays:     draft.TotalDays,
		DaysRemaining: draft.DaysRemaining,
		CorrelationId: correlationId,
		CreatedAt:     time.Now().UTC(),
	}
	if err := config.PublishAlertMessage(ctx, msg); err != nil {
		config.LogError(logger, "alertWorkflow.go", "ProcessIntervalAlert", "PublishAlertMessage", msg, err)
	}

	return draft
}
