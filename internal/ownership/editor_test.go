package ownership

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-tracker/arcadia/internal/platform/clock"
	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
)

type note struct {
	ID        int64
	Body      string
	CreatorID int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n note) Ownership() Stamp {
	return Stamp{CreatorID: n.CreatorID, CreatedAt: n.CreatedAt}
}

// noteEdit mimics a forged payload that also carries ownership fields.
type noteEdit struct {
	Body      string
	CreatorID int64
	CreatedAt time.Time
}

func applyNote(current note, edit noteEdit, now time.Time) note {
	current.Body = edit.Body
	current.UpdatedAt = now
	return current
}

type memoryNoteStore struct {
	t          *testing.T
	notes      map[int64]note
	findErr    error
	updateErr  error
	finds      int
	updates    int
	forbidSave bool
}

func newMemoryNoteStore(t *testing.T) *memoryNoteStore {
	return &memoryNoteStore{t: t, notes: make(map[int64]note)}
}

func (s *memoryNoteStore) Find(ctx context.Context, id int64) (note, error) {
	s.finds++
	if s.findErr != nil {
		return note{}, s.findErr
	}
	n, ok := s.notes[id]
	if !ok {
		return note{}, ErrNotFound
	}
	return n, nil
}

func (s *memoryNoteStore) Update(ctx context.Context, n note) (note, error) {
	s.updates++
	if s.forbidSave {
		s.t.Fatalf("Update called for note %d after a denial", n.ID)
	}
	if s.updateErr != nil {
		return note{}, s.updateErr
	}
	stored, ok := s.notes[n.ID]
	if !ok {
		return note{}, ErrNotFound
	}
	stored.Body = n.Body
	stored.UpdatedAt = n.UpdatedAt
	s.notes[n.ID] = stored
	return stored, nil
}

type recordedDecision struct {
	kind     string
	decision Decision
}

type decisionLog struct {
	entries []recordedDecision
}

func (l *decisionLog) RecordDecision(kind string, d Decision) {
	l.entries = append(l.entries, recordedDecision{kind: kind, decision: d})
}

func newNoteEditor(store *memoryNoteStore, now time.Time, rec DecisionRecorder) *Editor[note, noteEdit] {
	return NewEditor[note, noteEdit]("note", store, applyNote, NewPolicy(DefaultGracePeriod),
		WithClock(clock.Fake(now)), WithRecorder(rec))
}

func TestEditorStaffEditsOldRecord(t *testing.T) {
	store := newMemoryNoteStore(t)
	created := refNow.Add(-8 * 24 * time.Hour)
	store.notes[1] = note{ID: 1, Body: "old", CreatorID: 42, CreatedAt: created}
	log := &decisionLog{}
	editor := newNoteEditor(store, refNow, log)

	got, err := editor.Edit(context.Background(), Actor{ID: 100, Role: RoleStaff}, 1, noteEdit{Body: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Body)
	assert.Equal(t, refNow, got.UpdatedAt)
	assert.Equal(t, store.notes[1], got)
	require.Len(t, log.entries, 1)
	assert.Equal(t, "note", log.entries[0].kind)
	assert.True(t, log.entries[0].decision.Allowed)
}

func TestEditorOwnerInsideWindow(t *testing.T) {
	store := newMemoryNoteStore(t)
	store.notes[1] = note{ID: 1, Body: "draft", CreatorID: 42, CreatedAt: refNow.Add(-3 * 24 * time.Hour)}
	editor := newNoteEditor(store, refNow, nil)

	got, err := editor.Edit(context.Background(), Actor{ID: 42, Role: RoleMember}, 1, noteEdit{Body: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", got.Body)
}

func TestEditorDenialNeverWrites(t *testing.T) {
	cases := []struct {
		name  string
		actor Actor
		age   time.Duration
	}{
		{"owner after window", Actor{ID: 42, Role: RoleMember}, 8 * 24 * time.Hour},
		{"non-owner", Actor{ID: 7, Role: RoleMember}, time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryNoteStore(t)
			store.forbidSave = true
			original := note{ID: 1, Body: "keep", CreatorID: 42, CreatedAt: refNow.Add(-tc.age)}
			store.notes[1] = original
			log := &decisionLog{}
			editor := newNoteEditor(store, refNow, log)

			_, err := editor.Edit(context.Background(), tc.actor, 1, noteEdit{Body: "vandalised"})
			require.ErrorIs(t, err, ErrInsufficientPrivileges)
			require.ErrorIs(t, err, httpx.ErrForbidden)
			assert.Zero(t, store.updates)
			assert.Equal(t, original, store.notes[1])
			require.Len(t, log.entries, 1)
			assert.Equal(t, ReasonInsufficientPrivileges, log.entries[0].decision.Reason)
		})
	}
}

func TestEditorIgnoresForgedOwnershipFields(t *testing.T) {
	store := newMemoryNoteStore(t)
	created := refNow.Add(-2 * 24 * time.Hour)
	store.notes[1] = note{ID: 1, Body: "mine", CreatorID: 42, CreatedAt: created}
	editor := newNoteEditor(store, refNow, nil)

	forged := noteEdit{Body: "still mine", CreatorID: 7, CreatedAt: refNow}
	got, err := editor.Edit(context.Background(), Actor{ID: 42, Role: RoleMember}, 1, forged)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.CreatorID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, int64(42), store.notes[1].CreatorID)
	assert.True(t, store.notes[1].CreatedAt.Equal(created))
}

func TestEditorRejectsApplyThatTouchesStamp(t *testing.T) {
	store := newMemoryNoteStore(t)
	store.forbidSave = true
	store.notes[1] = note{ID: 1, CreatorID: 42, CreatedAt: refNow}
	leaky := func(current note, edit noteEdit, now time.Time) note {
		current.CreatorID = edit.CreatorID
		return current
	}
	editor := NewEditor[note, noteEdit]("note", store, leaky, NewPolicy(DefaultGracePeriod), WithClock(clock.Fake(refNow)))

	_, err := editor.Edit(context.Background(), Actor{ID: 1, Role: RoleStaff}, 1, noteEdit{CreatorID: 7})
	require.Error(t, err)
	assert.Zero(t, store.updates)
}

func TestEditorMissingRecord(t *testing.T) {
	store := newMemoryNoteStore(t)
	store.forbidSave = true
	log := &decisionLog{}
	editor := newNoteEditor(store, refNow, log)

	_, err := editor.Edit(context.Background(), Actor{ID: 1, Role: RoleStaff}, 404, noteEdit{Body: "x"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, log.entries, "policy must not run for a missing record")
	assert.Zero(t, store.updates)
}

func TestEditorWrapsStoreFailures(t *testing.T) {
	store := newMemoryNoteStore(t)
	store.forbidSave = true
	store.findErr = errors.New("dial tcp 127.0.0.1:5432: connection refused")
	editor := newNoteEditor(store, refNow, nil)

	_, err := editor.Edit(context.Background(), Actor{ID: 1, Role: RoleStaff}, 1, noteEdit{})
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, httpx.ErrUnavailable)
	assert.Zero(t, store.updates)
}

func TestEditorUpdateFailureIsStoreUnavailable(t *testing.T) {
	store := newMemoryNoteStore(t)
	store.notes[1] = note{ID: 1, CreatorID: 42, CreatedAt: refNow}
	store.updateErr = errors.New("serialization failure")
	editor := newNoteEditor(store, refNow, nil)

	_, err := editor.Edit(context.Background(), Actor{ID: 42, Role: RoleMember}, 1, noteEdit{Body: "x"})
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestEditorCancelledBeforeWrite(t *testing.T) {
	store := newMemoryNoteStore(t)
	store.notes[1] = note{ID: 1, Body: "keep", CreatorID: 42, CreatedAt: refNow}
	editor := newNoteEditor(store, refNow, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := editor.Edit(ctx, Actor{ID: 42, Role: RoleMember}, 1, noteEdit{Body: "late"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.updates)
	assert.Equal(t, "keep", store.notes[1].Body)
}
