package services

import (
	"time"

	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskInput carries the writable task fields for creation.
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Column      string     `json:"column"`
	DoneAt      *time.Time `json:"done_at"`
}

// TaskUpdate carries a partial set of task fields; nil pointers leave the
// stored value unchanged.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Column      *string    `json:"column"`
	DoneAt      *time.Time `json:"done_at"`
}

// TaskService owns task records scoped to their owner. Every method takes the
// owner identifier explicitly and applies it as a query filter, so a task
// belonging to another user is indistinguishable from one that does not
// exist: both come back as gorm.ErrRecordNotFound.
type TaskService interface {
	List(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error)
	Create(db *gorm.DB, ownerID uuid.UUID, input TaskInput) (*models.Task, error)
	Get(db *gorm.DB, ownerID, id uuid.UUID) (*models.Task, error)
	Update(db *gorm.DB, ownerID, id uuid.UUID, update TaskUpdate) (*models.Task, error)
	Delete(db *gorm.DB, ownerID, id uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

// List returns the owner's tasks in insertion order. The id tiebreak keeps
// the order stable when rows share a creation timestamp.
func (s *TaskServiceImpl) List(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	tasks := []models.Task{}
	err := db.Where("user_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) Create(db *gorm.DB, ownerID uuid.UUID, input TaskInput) (*models.Task, error) {
	if input.Column == "" {
		input.Column = models.ColumnTodo
	}
	if !models.IsValidColumn(input.Column) {
		return nil, NewValidationError("Column is not included in the list")
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Column:      input.Column,
		DoneAt:      input.DoneAt,
	}

	// A task created directly in the terminal column gets its completion
	// timestamp stamped server-side unless the client supplied one.
	if task.Column == models.ColumnDone && task.DoneAt == nil {
		now := time.Now()
		task.DoneAt = &now
	}

	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskServiceImpl) Get(db *gorm.DB, ownerID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := db.Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update inside a single transaction so concurrent
// writers cannot interleave between the read and the save.
func (s *TaskServiceImpl) Update(db *gorm.DB, ownerID, id uuid.UUID, update TaskUpdate) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error; err != nil {
			return err
		}

		previousColumn := task.Column

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.DueDate != nil {
			task.DueDate = update.DueDate
		}
		if update.Column != nil {
			if !models.IsValidColumn(*update.Column) {
				return NewValidationError("Column is not included in the list")
			}
			task.Column = *update.Column
		}

		// Completion timestamp policy: an explicit client value always wins;
		// otherwise entering the terminal column stamps it and leaving the
		// terminal column clears it.
		switch {
		case update.DoneAt != nil:
			task.DoneAt = update.DoneAt
		case task.Column == models.ColumnDone && previousColumn != models.ColumnDone:
			now := time.Now()
			task.DoneAt = &now
		case task.Column != models.ColumnDone && previousColumn == models.ColumnDone:
			task.DoneAt = nil
		}

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes the owner's task. Deleting an id that is already gone, or
// that belongs to someone else, reports not found.
func (s *TaskServiceImpl) Delete(db *gorm.DB, ownerID, id uuid.UUID) error {
	result := db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
