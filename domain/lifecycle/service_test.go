package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorecord/audit"
	"gorecord/domain"
	"gorecord/domain/lifecycle"
	"gorecord/domain/record"
	"gorecord/eventing"
	"gorecord/pagination"
	"gorecord/storage/memory"
)

// note 测试用实体
type note struct {
	record.Record
	Title string
}

func cloneNote(n *note) *note {
	c := *n
	return &c
}

// fakeClock 可推进的测试时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newNoteService(opts ...lifecycle.Option[*note, int64]) (*lifecycle.Service[*note, int64], *memory.Repo[*note]) {
	repo := memory.NewRepo(cloneNote)
	base := []lifecycle.Option[*note, int64]{
		lifecycle.WithClock[*note, int64](newFakeClock().Now),
		lifecycle.WithEntityType[*note, int64]("note"),
	}
	svc := lifecycle.NewService[*note, int64](repo, append(base, opts...)...)
	return svc, repo
}

func TestService_Create_AssignsIDAndVersion(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	n := &note{Title: "first"}
	require.True(t, n.IsNew())

	saved, err := svc.Create(ctx, "alice", n)
	require.NoError(t, err)
	assert.False(t, saved.IsNew())
	assert.Equal(t, int64(1), saved.GetID())
	assert.Equal(t, int64(0), saved.GetVersion())
	assert.Equal(t, "alice", saved.GetCreatedBy())
	assert.Equal(t, saved.GetCreatedAt(), saved.GetUpdatedAt())
}

func TestService_Create_RejectsPersistedEntity(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	n := &note{Title: "persisted"}
	n.SetID(9)
	_, err := svc.Create(ctx, "alice", n)
	assert.True(t, domain.IsInvalidArgument(err))
}

func TestService_Create_ValidationError(t *testing.T) {
	hooks := lifecycle.Hooks[*note]{
		Validate: func(n *note) error {
			if n.Title == "" {
				return domain.NewValidationError("title is required")
			}
			return nil
		},
	}
	svc, _ := newNoteService(lifecycle.WithHooks[*note, int64](hooks))
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", &note{})
	assert.True(t, domain.IsValidation(err))
}

func TestService_HookOrder(t *testing.T) {
	var order []string
	hooks := lifecycle.Hooks[*note]{
		Validate: func(n *note) error {
			order = append(order, "validate")
			return nil
		},
		PreSave: func(n *note) *note {
			order = append(order, "preSave")
			return n
		},
		PostSave: func(n *note) *note {
			order = append(order, "postSave")
			return n
		},
	}
	svc, _ := newNoteService(lifecycle.WithHooks[*note, int64](hooks))
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", &note{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"validate", "preSave", "postSave"}, order)

	order = nil
	_, err = svc.Update(ctx, "alice", 1, &note{Title: "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"validate", "preSave", "postSave"}, order)
}

func TestService_Update_RoundTrip(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "v1"})
	require.NoError(t, err)
	createdAt := saved.GetCreatedAt()

	loaded, err := svc.FindByID(ctx, saved.GetID())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "bob", saved.GetID(), loaded)
	require.NoError(t, err)
	assert.Equal(t, saved.GetVersion()+1, updated.GetVersion())
	assert.Equal(t, createdAt, updated.GetCreatedAt())
	assert.True(t, updated.GetUpdatedAt().After(createdAt))
	assert.Equal(t, "bob", updated.GetUpdatedBy())
	assert.Equal(t, "alice", updated.GetCreatedBy())
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newNoteService()
	_, err := svc.Update(context.Background(), "alice", 404, &note{Title: "x"})
	assert.True(t, domain.IsNotFound(err))
}

func TestService_Update_StaleVersionConflict(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "v1"})
	require.NoError(t, err)

	first, err := svc.FindByID(ctx, saved.GetID())
	require.NoError(t, err)
	second, err := svc.FindByID(ctx, saved.GetID())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", saved.GetID(), first)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "bob", saved.GetID(), second)
	assert.True(t, domain.IsConcurrencyConflict(err))
}

func TestService_ConcurrentUpdates_ExactlyOneSucceeds(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "base"})
	require.NoError(t, err)

	copies := make([]*note, 2)
	for i := range copies {
		loaded, err := svc.FindByID(ctx, saved.GetID())
		require.NoError(t, err)
		copies[i] = loaded
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range copies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Update(ctx, "racer", saved.GetID(), copies[i])
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, domain.IsConcurrencyConflict(err))
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestService_SoftDeleteAndRestore(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "doomed"})
	require.NoError(t, err)
	id := saved.GetID()

	require.NoError(t, svc.SoftDelete(ctx, "alice", id))

	_, err = svc.FindByID(ctx, id)
	assert.True(t, domain.IsNotFound(err))

	deleted, err := svc.FindByIDIncludingDeleted(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted())
	require.NotNil(t, deleted.GetDeletedBy())
	assert.Equal(t, "alice", *deleted.GetDeletedBy())

	exists, err := svc.ExistsByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	// 重复软删 → ALREADY_DELETED
	err = svc.SoftDelete(ctx, "alice", id)
	assert.True(t, domain.IsAlreadyDeleted(err))

	require.NoError(t, svc.Restore(ctx, "bob", id))
	restored, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())

	// 对活跃实体恢复 → NOT_DELETED
	err = svc.Restore(ctx, "bob", id)
	assert.True(t, domain.IsNotDeleted(err))
}

func TestService_SoftDelete_NotFound(t *testing.T) {
	svc, _ := newNoteService()
	err := svc.SoftDelete(context.Background(), "alice", 404)
	assert.True(t, domain.IsNotFound(err))
}

func TestService_HardDelete_Idempotent(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "gone"})
	require.NoError(t, err)
	id := saved.GetID()

	require.NoError(t, svc.HardDelete(ctx, "alice", id))
	_, err = svc.FindByIDIncludingDeleted(ctx, id)
	assert.True(t, domain.IsNotFound(err))

	// 重复物理删除是无操作，不报错
	require.NoError(t, svc.HardDelete(ctx, "alice", id))
}

func TestService_FullLifecycleScenario(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "scenario"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.GetID())
	assert.Equal(t, int64(0), saved.GetVersion())

	require.NoError(t, svc.SoftDelete(ctx, "alice", 1))
	err = svc.SoftDelete(ctx, "alice", 1)
	assert.True(t, domain.IsAlreadyDeleted(err))

	require.NoError(t, svc.Restore(ctx, "alice", 1))
	require.NoError(t, svc.HardDelete(ctx, "alice", 1))

	_, err = svc.FindByIDIncludingDeleted(ctx, 1)
	assert.True(t, domain.IsNotFound(err))
}

func TestService_List_Pagination(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, "alice", &note{Title: "n"})
		require.NoError(t, err)
	}

	p0, err := svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, p0.Content, 10)
	assert.Equal(t, int64(25), p0.TotalElements)
	assert.Equal(t, 3, p0.TotalPages)

	p2, err := svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, p2.Content, 5)

	p5, err := svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: 5, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, p5.Content)
	assert.Equal(t, int64(25), p5.TotalElements)
}

func TestService_List_FilterSplit(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, "alice", &note{Title: "n"})
		require.NoError(t, err)
	}
	require.NoError(t, svc.SoftDelete(ctx, "alice", 1))
	require.NoError(t, svc.SoftDelete(ctx, "alice", 2))

	active, err := svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, active.Content, 3)

	deleted, err := svc.List(ctx, lifecycle.FilterDeleted, pagination.Request{Number: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, deleted.Content, 2)

	all, err := svc.List(ctx, lifecycle.FilterAll, pagination.Request{Number: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, all.Content, 5)
}

func TestService_List_RejectsOutOfRangeRequests(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	_, err := svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: -1, Size: 10})
	assert.True(t, domain.IsInvalidArgument(err))

	_, err = svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: 0, Size: 0})
	assert.True(t, domain.IsInvalidArgument(err))

	_, err = svc.List(ctx, lifecycle.FilterActive, pagination.Request{Number: 0, Size: 101})
	assert.True(t, domain.IsInvalidArgument(err))

	_, err = svc.List(ctx, lifecycle.Filter("bogus"), pagination.Request{Number: 0, Size: 10})
	assert.True(t, domain.IsInvalidArgument(err))
}

func TestService_Count(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Create(ctx, "alice", &note{Title: "n"})
		require.NoError(t, err)
	}
	require.NoError(t, svc.SoftDelete(ctx, "alice", 1))

	active, err := svc.Count(ctx, lifecycle.FilterActive)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active)

	deleted, err := svc.Count(ctx, lifecycle.FilterDeleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	all, err := svc.Count(ctx, lifecycle.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, int64(4), all)
}

func TestService_ZeroID_Rejected(t *testing.T) {
	svc, _ := newNoteService()
	ctx := context.Background()

	_, err := svc.FindByID(ctx, 0)
	assert.True(t, domain.IsInvalidArgument(err))
	_, err = svc.Update(ctx, "alice", 0, &note{})
	assert.True(t, domain.IsInvalidArgument(err))
	assert.True(t, domain.IsInvalidArgument(svc.SoftDelete(ctx, "alice", 0)))
	assert.True(t, domain.IsInvalidArgument(svc.Restore(ctx, "alice", 0)))
	assert.True(t, domain.IsInvalidArgument(svc.HardDelete(ctx, "alice", 0)))
}

func TestService_AuditTrail(t *testing.T) {
	store := audit.NewMemoryStore()
	svc, _ := newNoteService(lifecycle.WithAuditStore[*note, int64](store))
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "audited"})
	require.NoError(t, err)
	loaded, err := svc.FindByID(ctx, saved.GetID())
	require.NoError(t, err)
	_, err = svc.Update(ctx, "bob", saved.GetID(), loaded)
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, "alice", saved.GetID()))
	require.NoError(t, svc.Restore(ctx, "alice", saved.GetID()))
	require.NoError(t, svc.HardDelete(ctx, "alice", saved.GetID()))

	trail, err := store.ListByEntity(ctx, "note", "1", 0, 0)
	require.NoError(t, err)
	ops := make([]string, len(trail))
	for i, rec := range trail {
		ops[i] = rec.Operation
	}
	assert.Equal(t, []string{
		audit.OpCreate, audit.OpUpdate, audit.OpDelete, audit.OpRestore, audit.OpDeleteHard,
	}, ops)
	assert.Equal(t, "bob", trail[1].Actor)
}

func TestService_PublishesLifecycleEvents(t *testing.T) {
	bus := eventing.NewBus()
	var mu sync.Mutex
	var seen []string
	bus.Subscribe("", func(ctx context.Context, event eventing.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, event.Type)
		return nil
	})

	svc, _ := newNoteService(lifecycle.WithPublisher[*note, int64](bus))
	ctx := context.Background()

	saved, err := svc.Create(ctx, "alice", &note{Title: "evt"})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, "alice", saved.GetID()))
	require.NoError(t, svc.Restore(ctx, "alice", saved.GetID()))
	require.NoError(t, svc.HardDelete(ctx, "alice", saved.GetID()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		eventing.TypeCreated,
		eventing.TypeSoftDeleted,
		eventing.TypeRestored,
		eventing.TypeErased,
	}, seen)
}
