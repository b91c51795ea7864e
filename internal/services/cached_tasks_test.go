package services_test

import (
	"testing"

	"taskboard/backend/internal/cache"
	"taskboard/backend/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCachedTaskService(t *testing.T) (services.TaskService, *miniredis.Miniredis, *gorm.DB) {
	t.Helper()

	mr := miniredis.RunT(t)

	cacheConfig := cache.DefaultCacheConfig()
	cacheConfig.Addr = mr.Addr()
	redisCache := cache.NewRedisCache(cacheConfig)
	t.Cleanup(func() { redisCache.Close() })

	db := setupTestDB(t)
	return services.NewCachedTaskService(services.NewTaskService(), redisCache), mr, db
}

func TestCachedTasks_ReadThrough(t *testing.T) {
	tasks, mr, db := setupCachedTaskService(t)
	alice := createTestUser(t, db, "a@x.com")

	created, err := tasks.Create(db, alice.ID, services.TaskInput{Title: "cached"})
	require.NoError(t, err)

	got, err := tasks.Get(db, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Title)

	// The entry now lives in Redis; a second read must not need the DB.
	assert.True(t, mr.Exists("task:"+alice.ID.String()+":"+created.ID.String()))

	again, err := tasks.Get(db, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)
}

func TestCachedTasks_ListInvalidatedOnWrite(t *testing.T) {
	tasks, mr, db := setupCachedTaskService(t)
	alice := createTestUser(t, db, "a@x.com")

	_, err := tasks.Create(db, alice.ID, services.TaskInput{Title: "first"})
	require.NoError(t, err)

	list, err := tasks.List(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, mr.Exists("tasks:"+alice.ID.String()))

	_, err = tasks.Create(db, alice.ID, services.TaskInput{Title: "second"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("tasks:"+alice.ID.String()), "list cache must be invalidated by writes")

	list, err = tasks.List(db, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCachedTasks_OwnershipScopedKeys(t *testing.T) {
	tasks, _, db := setupCachedTaskService(t)
	alice := createTestUser(t, db, "a@x.com")
	bob := createTestUser(t, db, "b@x.com")

	created, err := tasks.Create(db, alice.ID, services.TaskInput{Title: "private"})
	require.NoError(t, err)

	// Warm Alice's cache entry, then make sure Bob cannot ride on it.
	_, err = tasks.Get(db, alice.ID, created.ID)
	require.NoError(t, err)

	_, err = tasks.Get(db, bob.ID, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCachedTasks_SurvivesCacheOutage(t *testing.T) {
	tasks, mr, db := setupCachedTaskService(t)
	alice := createTestUser(t, db, "a@x.com")

	created, err := tasks.Create(db, alice.ID, services.TaskInput{Title: "resilient"})
	require.NoError(t, err)

	mr.Close()

	got, err := tasks.Get(db, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "resilient", got.Title)

	list, err := tasks.List(db, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, tasks.Delete(db, alice.ID, created.ID))
}
