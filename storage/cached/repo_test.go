package cached_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorecord/domain"
	"gorecord/domain/lifecycle"
	"gorecord/domain/record"
	"gorecord/storage/cached"
	"gorecord/storage/memory"
)

type article struct {
	record.Record
	Title string
}

func cloneArticle(a *article) *article {
	copied := *a
	return &copied
}

// spyRepo 统计命中内层仓储的按 ID 读取次数。
type spyRepo struct {
	lifecycle.IRepository[*article, int64]
	findActive atomic.Int64
}

func (s *spyRepo) FindActive(ctx context.Context, id int64) (*article, error) {
	s.findActive.Add(1)
	return s.IRepository.FindActive(ctx, id)
}

func newCachedRepo(t *testing.T, config cached.Config) (*cached.Repo[*article], *spyRepo) {
	t.Helper()
	spy := &spyRepo{IRepository: memory.NewRepo(cloneArticle)}
	return cached.NewRepo[*article](spy, cloneArticle, config), spy
}

func mustPersist(t *testing.T, repo *cached.Repo[*article], title string) *article {
	t.Helper()
	a := &article{Title: title}
	now := time.Now()
	a.SetCreatedInfo("tester", now)
	a.SetUpdatedInfo("tester", now)
	saved, err := repo.Persist(context.Background(), a)
	require.NoError(t, err)
	return saved
}

func TestCachedRepo_ReadThrough(t *testing.T) {
	repo, spy := newCachedRepo(t, cached.Config{Name: "articles", MaxEntries: 10})
	ctx := context.Background()

	saved := mustPersist(t, repo, "hello")

	first, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	assert.Equal(t, "hello", first.Title)
	assert.Equal(t, int64(1), spy.findActive.Load())

	// 第二次读取应命中缓存
	second, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	assert.Equal(t, "hello", second.Title)
	assert.Equal(t, int64(1), spy.findActive.Load())
	assert.Equal(t, int64(1), repo.CacheStats().Hits)
}

func TestCachedRepo_CacheIsolation(t *testing.T) {
	repo, _ := newCachedRepo(t, cached.Config{MaxEntries: 10})
	ctx := context.Background()

	saved := mustPersist(t, repo, "original")

	loaded, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	loaded.Title = "mutated"

	again, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestCachedRepo_InvalidateOnPersist(t *testing.T) {
	repo, spy := newCachedRepo(t, cached.Config{MaxEntries: 10})
	ctx := context.Background()

	saved := mustPersist(t, repo, "v1")
	_, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)

	update, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	update.Title = "v2"
	update.SetUpdatedInfo("tester", time.Now())
	_, err = repo.Persist(ctx, update)
	require.NoError(t, err)

	calls := spy.findActive.Load()
	fresh, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	assert.Equal(t, "v2", fresh.Title)
	assert.Equal(t, calls+1, spy.findActive.Load(), "persist should invalidate the cached entry")
}

func TestCachedRepo_InvalidateOnSoftDelete(t *testing.T) {
	repo, _ := newCachedRepo(t, cached.Config{MaxEntries: 10})
	ctx := context.Background()

	saved := mustPersist(t, repo, "doomed")
	_, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)

	affected, err := repo.MarkDeleted(ctx, saved.GetID(), "alice", time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	_, err = repo.FindActive(ctx, saved.GetID())
	assert.True(t, domain.IsNotFound(err))

	exists, err := repo.ExistsActive(ctx, saved.GetID())
	require.NoError(t, err)
	assert.False(t, exists)

	affected, err = repo.ClearDeleted(ctx, saved.GetID())
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	back, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)
	assert.False(t, back.IsDeleted())
}

func TestCachedRepo_InvalidateOnErase(t *testing.T) {
	repo, _ := newCachedRepo(t, cached.Config{MaxEntries: 10})
	ctx := context.Background()

	saved := mustPersist(t, repo, "gone")
	_, err := repo.FindActive(ctx, saved.GetID())
	require.NoError(t, err)

	require.NoError(t, repo.EraseAny(ctx, saved.GetID()))

	_, err = repo.FindActive(ctx, saved.GetID())
	assert.True(t, domain.IsNotFound(err))
}
