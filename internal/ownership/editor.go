package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcadia-tracker/arcadia/internal/platform/clock"
)

// Store loads and persists one record type.
//
// Find returns ErrNotFound when id does not exist. Update persists the
// business fields of record and must leave the stored creator and creation
// timestamp untouched; it returns the record as stored.
type Store[R Owned] interface {
	Find(ctx context.Context, id int64) (R, error)
	Update(ctx context.Context, record R) (R, error)
}

// ApplyFunc copies the business fields of edit onto current. It must not
// change the ownership stamp; Editor rejects the result if it does.
type ApplyFunc[R Owned, P any] func(current R, edit P, now time.Time) R

// DecisionRecorder observes policy outcomes, typically for metrics.
type DecisionRecorder interface {
	RecordDecision(kind string, decision Decision)
}

// Editor runs an edit request: load, decide, apply, persist.
type Editor[R Owned, P any] struct {
	kind     string
	store    Store[R]
	apply    ApplyFunc[R, P]
	policy   Policy
	clock    clock.Clock
	logger   *slog.Logger
	recorder DecisionRecorder
}

// EditorOption customises an Editor.
type EditorOption func(*editorOptions)

type editorOptions struct {
	clock    clock.Clock
	logger   *slog.Logger
	recorder DecisionRecorder
}

// WithClock overrides the system clock.
func WithClock(c clock.Clock) EditorOption {
	return func(o *editorOptions) { o.clock = c }
}

// WithLogger sets the logger used for denials and store failures.
func WithLogger(l *slog.Logger) EditorOption {
	return func(o *editorOptions) { o.logger = l }
}

// WithRecorder registers a decision observer.
func WithRecorder(r DecisionRecorder) EditorOption {
	return func(o *editorOptions) { o.recorder = r }
}

// NewEditor builds an Editor for records of the given kind ("artist", "comment").
func NewEditor[R Owned, P any](kind string, store Store[R], apply ApplyFunc[R, P], policy Policy, opts ...EditorOption) *Editor[R, P] {
	o := editorOptions{clock: clock.System()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor[R, P]{
		kind:     kind,
		store:    store,
		apply:    apply,
		policy:   policy,
		clock:    o.clock,
		logger:   logger.With(slog.String("record", kind)),
		recorder: o.recorder,
	}
}

// Edit applies edit to record id on behalf of actor and returns the stored
// result. A denial is returned before the store is asked to write anything.
func (e *Editor[R, P]) Edit(ctx context.Context, actor Actor, id int64, edit P) (R, error) {
	var zero R

	current, err := e.store.Find(ctx, id)
	if err != nil {
		return zero, e.storeError("find", id, err)
	}

	now := e.clock.Now()
	decision := e.policy.Decide(actor, current.Ownership(), now)
	if e.recorder != nil {
		e.recorder.RecordDecision(e.kind, decision)
	}
	if !decision.Allowed {
		e.logger.Info("edit denied",
			slog.Int64("id", id),
			slog.Int64("actor_id", actor.ID),
			slog.String("reason", decision.Reason.String()),
		)
		return zero, decision.Err()
	}

	updated := e.apply(current, edit, now)
	if !updated.Ownership().Equal(current.Ownership()) {
		return zero, fmt.Errorf("ownership: %s %d: apply changed the ownership stamp", e.kind, id)
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	stored, err := e.store.Update(ctx, updated)
	if err != nil {
		return zero, e.storeError("update", id, err)
	}
	return stored, nil
}

func (e *Editor[R, P]) storeError(op string, id int64, err error) error {
	err = StoreError(op, err)
	if errors.Is(err, ErrStoreUnavailable) {
		e.logger.Error("record store failure", slog.String("op", op), slog.Int64("id", id), slog.Any("error", err))
	}
	return err
}
