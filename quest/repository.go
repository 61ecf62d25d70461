package quest

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest-app/sidequest/server/audit"
	"github.com/sidequest-app/sidequest/server/model"
	"go.uber.org/zap"
)

// ErrInvalidStep is returned when a step index is outside the quest's
// action step list.
var ErrInvalidStep = errors.New("step index out of range")

type ctxKey int

const traceKey ctxKey = iota

// WithTraceID attaches a request trace id to the context so repository
// mutations can tag their audit entries.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey, traceID)
}

func traceID(ctx context.Context) string {
	if v, ok := ctx.Value(traceKey).(string); ok {
		return v
	}
	return ""
}

// QuestUpdate is a partial update of a quest record. Nil fields are left
// untouched.
type QuestUpdate struct {
	Status *model.QuestStatus
	Data   *model.QuestData
}

// DataPatch is a partial update of a quest's descriptive payload. Nil fields
// are left untouched.
type DataPatch struct {
	Title          *string
	WhyRecommended *string
	ActionSteps    *[]string
	CompletedSteps *[]int
}

// Repository holds the canonical in-memory quest state per owner and syncs
// it best-effort to the Store.
//
// Mutations are optimistic: the local state is updated first and the store
// write happens after. A failed store write never rolls the local change
// back; it is logged and audited, and the local state stays authoritative
// until the next Initialize. Quests with a local-only id, and all state of
// the guest owner, are never written to the store.
type Repository struct {
	mu     sync.Mutex
	owners map[int64]*ownerState
	store  Store
	audit  *audit.Service
	logger *zap.Logger
}

type ownerState struct {
	quests     []*model.Quest // ordered oldest first
	lastAccess time.Time
}

// NewRepository creates a Repository over the given store. The audit service
// may be nil in tests.
func NewRepository(store Store, auditSvc *audit.Service, logger *zap.Logger) *Repository {
	return &Repository{
		owners: make(map[int64]*ownerState),
		store:  store,
		audit:  auditSvc,
		logger: logger,
	}
}

// Initialize replaces the owner's in-memory state with the store's contents.
// On a store error the prior in-memory state is kept and the error returned.
// The guest owner has no remote state; initializing it just ensures an empty
// local slate exists.
func (r *Repository) Initialize(ctx context.Context, userID int64) error {
	if userID == model.GuestUserID {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.owners[userID]; !ok {
			r.owners[userID] = &ownerState{lastAccess: time.Now()}
		}
		return nil
	}

	records, err := r.store.Select(ctx, userID)
	if err != nil {
		r.logger.Warn("quest state load failed, keeping prior state",
			zap.Int64("user_id", userID), zap.Error(err))
		r.auditFail(ctx, userID, "", "quest.initialize", err)
		return err
	}

	state := &ownerState{
		quests:     make([]*model.Quest, 0, len(records)),
		lastAccess: time.Now(),
	}
	for i := range records {
		q := records[i]
		state.quests = append(state.quests, &q)
	}

	r.mu.Lock()
	r.owners[userID] = state
	r.mu.Unlock()
	return nil
}

// EnsureLoaded initializes the owner's state from the store unless it is
// already resident. Evicted owners are transparently reloaded on next use.
func (r *Repository) EnsureLoaded(ctx context.Context, userID int64) error {
	r.mu.Lock()
	_, ok := r.owners[userID]
	r.mu.Unlock()
	if ok {
		return nil
	}
	return r.Initialize(ctx, userID)
}

// AddQuest appends a new suggested quest for the owner and syncs it to the
// store. Guest quests get a local-only id and skip the store entirely.
func (r *Repository) AddQuest(ctx context.Context, userID int64, data model.QuestData) (model.Quest, error) {
	return r.add(ctx, userID, data, model.QuestStatusSuggested)
}

// AddGenerated appends a batch of freshly generated suggestions.
func (r *Repository) AddGenerated(ctx context.Context, userID int64, batch []model.QuestData) ([]model.Quest, error) {
	out := make([]model.Quest, 0, len(batch))
	for _, d := range batch {
		q, err := r.add(ctx, userID, d, model.QuestStatusSuggested)
		if err != nil {
			return out, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *Repository) add(ctx context.Context, userID int64, data model.QuestData, status model.QuestStatus) (model.Quest, error) {
	q := &model.Quest{
		UserID:    userID,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if userID == model.GuestUserID {
		q.ID = model.LocalIDPrefix + uuid.NewString()
	} else {
		q.ID = uuid.NewString()
	}
	if err := q.SetData(data); err != nil {
		return model.Quest{}, err
	}

	r.mu.Lock()
	state := r.touch(userID)
	state.quests = append(state.quests, q)
	snapshot := *q
	r.mu.Unlock()

	// Sync the snapshot, never the live record: once the lock is released a
	// concurrent mutation may write to q while the store serializes it.
	r.sync(ctx, &snapshot, "quest.add", func(sq *model.Quest) error {
		return r.store.Insert(ctx, sq)
	})
	return snapshot, nil
}

// Get returns a copy of one quest.
func (r *Repository) Get(ctx context.Context, userID int64, id string) (model.Quest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.touch(userID)
	q := state.find(id)
	if q == nil {
		return model.Quest{}, ErrNotFound
	}
	return *q, nil
}

// All returns copies of every quest for the owner, oldest first.
func (r *Repository) All(ctx context.Context, userID int64) []model.Quest {
	return r.view(userID, func(*model.Quest) bool { return true })
}

// Suggested returns quests still awaiting a decision.
func (r *Repository) Suggested(ctx context.Context, userID int64) []model.Quest {
	return r.view(userID, func(q *model.Quest) bool { return q.Status == model.QuestStatusSuggested })
}

// Active returns quests the owner is working on.
func (r *Repository) Active(ctx context.Context, userID int64) []model.Quest {
	return r.view(userID, func(q *model.Quest) bool { return q.Status == model.QuestStatusActive })
}

// Completed returns finished quests.
func (r *Repository) Completed(ctx context.Context, userID int64) []model.Quest {
	return r.view(userID, func(q *model.Quest) bool { return q.Status == model.QuestStatusCompleted })
}

func (r *Repository) view(userID int64, keep func(*model.Quest) bool) []model.Quest {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.touch(userID)
	out := make([]model.Quest, 0, len(state.quests))
	for _, q := range state.quests {
		if keep(q) {
			out = append(out, *q)
		}
	}
	return out
}

// StartQuest moves a suggested quest to active. Starting an already active,
// completed, or archived quest is a no-op that returns the current record.
func (r *Repository) StartQuest(ctx context.Context, userID int64, id string) (model.Quest, error) {
	return r.mutate(ctx, userID, id, "quest.start", func(q *model.Quest) bool {
		if q.Status != model.QuestStatusSuggested {
			return false
		}
		now := time.Now()
		q.Status = model.QuestStatusActive
		q.StartedAt = &now
		return true
	})
}

// CompleteQuest moves a suggested or active quest to completed, marking every
// action step done. Completing a completed or archived quest is a no-op.
func (r *Repository) CompleteQuest(ctx context.Context, userID int64, id string) (model.Quest, error) {
	return r.mutate(ctx, userID, id, "quest.complete", func(q *model.Quest) bool {
		if q.Status != model.QuestStatusSuggested && q.Status != model.QuestStatusActive {
			return false
		}
		now := time.Now()
		q.Status = model.QuestStatusCompleted
		if q.StartedAt == nil {
			q.StartedAt = &now
		}
		q.CompletedAt = &now
		if d, err := q.Data(); err == nil {
			d.CompletedSteps = allSteps(len(d.ActionSteps))
			d.Progress = 100
			_ = q.SetData(d)
		}
		return true
	})
}

// ArchiveQuest moves any quest to archived. Archiving an archived quest is a
// no-op.
func (r *Repository) ArchiveQuest(ctx context.Context, userID int64, id string) (model.Quest, error) {
	return r.mutate(ctx, userID, id, "quest.archive", func(q *model.Quest) bool {
		if q.Status == model.QuestStatusArchived {
			return false
		}
		q.Status = model.QuestStatusArchived
		return true
	})
}

// UpdateQuest applies a partial record update.
func (r *Repository) UpdateQuest(ctx context.Context, userID int64, id string, upd QuestUpdate) (model.Quest, error) {
	return r.mutate(ctx, userID, id, "quest.update", func(q *model.Quest) bool {
		changed := false
		if upd.Status != nil && *upd.Status != q.Status {
			q.Status = *upd.Status
			now := time.Now()
			switch q.Status {
			case model.QuestStatusActive:
				if q.StartedAt == nil {
					q.StartedAt = &now
				}
				q.CompletedAt = nil
			case model.QuestStatusCompleted:
				if q.StartedAt == nil {
					q.StartedAt = &now
				}
				q.CompletedAt = &now
			case model.QuestStatusSuggested:
				q.StartedAt = nil
				q.CompletedAt = nil
			}
			changed = true
		}
		if upd.Data != nil {
			_ = q.SetData(*upd.Data)
			changed = true
		}
		return changed
	})
}

// UpdateQuestData applies a partial payload update. Completed step lists are
// deduplicated, sorted, and bounds-checked against the action steps, and the
// progress percentage is recomputed from them.
func (r *Repository) UpdateQuestData(ctx context.Context, userID int64, id string, patch DataPatch) (model.Quest, error) {
	var patchErr error
	q, err := r.mutate(ctx, userID, id, "quest.update_data", func(q *model.Quest) bool {
		d, err := q.Data()
		if err != nil {
			patchErr = err
			return false
		}
		if patch.Title != nil {
			d.Title = *patch.Title
		}
		if patch.WhyRecommended != nil {
			d.WhyRecommended = *patch.WhyRecommended
		}
		if patch.ActionSteps != nil {
			d.ActionSteps = *patch.ActionSteps
		}
		if patch.CompletedSteps != nil {
			d.CompletedSteps = *patch.CompletedSteps
		}
		d.CompletedSteps = normalizeSteps(d.CompletedSteps, len(d.ActionSteps))
		d.Progress = progressOf(len(d.CompletedSteps), len(d.ActionSteps))
		if err := q.SetData(d); err != nil {
			patchErr = err
			return false
		}
		return true
	})
	if patchErr != nil {
		return model.Quest{}, patchErr
	}
	return q, err
}

// ToggleStep flips the completion state of one action step and recomputes
// progress. The step index must be inside the action step list.
func (r *Repository) ToggleStep(ctx context.Context, userID int64, id string, step int) (model.Quest, error) {
	var stepErr error
	q, err := r.mutate(ctx, userID, id, "quest.toggle_step", func(q *model.Quest) bool {
		d, err := q.Data()
		if err != nil {
			stepErr = err
			return false
		}
		if step < 0 || step >= len(d.ActionSteps) {
			stepErr = ErrInvalidStep
			return false
		}
		found := false
		steps := d.CompletedSteps[:0:0]
		for _, s := range d.CompletedSteps {
			if s == step {
				found = true
				continue
			}
			steps = append(steps, s)
		}
		if !found {
			steps = append(steps, step)
		}
		d.CompletedSteps = normalizeSteps(steps, len(d.ActionSteps))
		d.Progress = progressOf(len(d.CompletedSteps), len(d.ActionSteps))
		if err := q.SetData(d); err != nil {
			stepErr = err
			return false
		}
		return true
	})
	if stepErr != nil {
		return model.Quest{}, stepErr
	}
	return q, err
}

// DeleteQuest removes a quest from local state and, for synced quests, from
// the store.
func (r *Repository) DeleteQuest(ctx context.Context, userID int64, id string) error {
	r.mu.Lock()
	state := r.touch(userID)
	idx := -1
	for i, q := range state.quests {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return ErrNotFound
	}
	removed := state.quests[idx]
	state.quests = append(state.quests[:idx], state.quests[idx+1:]...)
	r.mu.Unlock()

	if userID == model.GuestUserID || model.IsLocalID(removed.ID) {
		return nil
	}
	if err := r.store.Delete(ctx, userID, id); err != nil {
		r.logger.Warn("quest delete sync failed",
			zap.Int64("user_id", userID), zap.String("quest_id", id), zap.Error(err))
		r.auditFail(ctx, userID, id, "quest.delete", err)
	}
	return nil
}

// EvictIdle drops in-memory state for owners idle longer than maxIdle and
// returns how many were evicted.
func (r *Repository) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for userID, state := range r.owners {
		if state.lastAccess.Before(cutoff) {
			delete(r.owners, userID)
			evicted++
		}
	}
	return evicted
}

// mutate applies fn to one quest under the lock. fn returns whether it
// changed anything; unchanged quests skip the store write.
func (r *Repository) mutate(ctx context.Context, userID int64, id, action string, fn func(*model.Quest) bool) (model.Quest, error) {
	r.mu.Lock()
	state := r.touch(userID)
	q := state.find(id)
	if q == nil {
		r.mu.Unlock()
		return model.Quest{}, ErrNotFound
	}
	changed := fn(q)
	if changed {
		q.UpdatedAt = time.Now()
	}
	snapshot := *q
	r.mu.Unlock()

	if changed {
		r.sync(ctx, &snapshot, action, func(sq *model.Quest) error {
			return r.store.Update(ctx, sq)
		})
	}
	return snapshot, nil
}

// sync pushes one quest to the store unless it is local-only. Failures are
// logged and audited, never propagated.
func (r *Repository) sync(ctx context.Context, q *model.Quest, action string, write func(*model.Quest) error) {
	if q.UserID == model.GuestUserID || model.IsLocalID(q.ID) {
		return
	}
	start := time.Now()
	if err := write(q); err != nil {
		r.logger.Warn("quest sync failed, keeping local state",
			zap.String("action", action),
			zap.Int64("user_id", q.UserID),
			zap.String("quest_id", q.ID),
			zap.Error(err))
		r.auditFail(ctx, q.UserID, q.ID, action, err)
		return
	}
	if r.audit != nil {
		r.audit.Log(audit.Entry{
			TraceID:    traceID(ctx),
			UserID:     &q.UserID,
			QuestID:    q.ID,
			Action:     action,
			DurationMs: int(time.Since(start).Milliseconds()),
		})
	}
}

func (r *Repository) auditFail(ctx context.Context, userID int64, questID, action string, err error) {
	if r.audit == nil {
		return
	}
	r.audit.Log(audit.Entry{
		TraceID: traceID(ctx),
		UserID:  &userID,
		QuestID: questID,
		Action:  action,
		Error:   err.Error(),
	})
}

// touch returns the owner state, creating it on first use, and bumps its
// last access time. Callers must hold the lock.
func (r *Repository) touch(userID int64) *ownerState {
	state, ok := r.owners[userID]
	if !ok {
		state = &ownerState{}
		r.owners[userID] = state
	}
	state.lastAccess = time.Now()
	return state
}

func (s *ownerState) find(id string) *model.Quest {
	for _, q := range s.quests {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// normalizeSteps dedupes, sorts, and drops out-of-range step indices.
func normalizeSteps(steps []int, total int) []int {
	seen := make(map[int]bool, len(steps))
	out := make([]int, 0, len(steps))
	for _, s := range steps {
		if s < 0 || s >= total || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Ints(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// progressOf is the rounded completion percentage.
func progressOf(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

func allSteps(n int) []int {
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
