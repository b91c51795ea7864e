package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/backend/internal/cache"
	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	taskCacheTTL     = 30 * time.Minute
	taskListCacheTTL = 10 * time.Minute
)

// CachedTaskService is a read-through cache in front of a TaskService. Cache
// keys always embed the owner identifier, so the ownership scoping of the
// underlying repository carries over to cached reads. Cache failures fall
// through to the database.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func taskKey(ownerID, id uuid.UUID) string {
	return fmt.Sprintf("task:%s:%s", ownerID, id)
}

func taskListKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s", ownerID)
}

func (s *CachedTaskService) List(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	ctx := context.Background()

	var cached []models.Task
	if err := s.cache.Get(ctx, taskListKey(ownerID), &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.List(db, ownerID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, taskListKey(ownerID), tasks, taskListCacheTTL)

	return tasks, nil
}

func (s *CachedTaskService) Create(db *gorm.DB, ownerID uuid.UUID, input TaskInput) (*models.Task, error) {
	task, err := s.taskService.Create(db, ownerID, input)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	_ = s.cache.Set(ctx, taskKey(ownerID, task.ID), task, taskCacheTTL)
	_ = s.cache.Delete(ctx, taskListKey(ownerID))

	return task, nil
}

func (s *CachedTaskService) Get(db *gorm.DB, ownerID, id uuid.UUID) (*models.Task, error) {
	ctx := context.Background()

	var cached models.Task
	if err := s.cache.Get(ctx, taskKey(ownerID, id), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDown) {
		// Unexpected cache errors are non-fatal; the database remains the
		// source of truth.
		_ = s.cache.Delete(ctx, taskKey(ownerID, id))
	}

	task, err := s.taskService.Get(db, ownerID, id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, taskKey(ownerID, id), task, taskCacheTTL)

	return task, nil
}

func (s *CachedTaskService) Update(db *gorm.DB, ownerID, id uuid.UUID, update TaskUpdate) (*models.Task, error) {
	task, err := s.taskService.Update(db, ownerID, id, update)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	_ = s.cache.Set(ctx, taskKey(ownerID, id), task, taskCacheTTL)
	_ = s.cache.Delete(ctx, taskListKey(ownerID))

	return task, nil
}

func (s *CachedTaskService) Delete(db *gorm.DB, ownerID, id uuid.UUID) error {
	if err := s.taskService.Delete(db, ownerID, id); err != nil {
		return err
	}

	ctx := context.Background()
	_ = s.cache.Delete(ctx, taskKey(ownerID, id), taskListKey(ownerID))

	return nil
}
