package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/horizon/internal/models"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = models.ErrNotFound
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ListAll returns every task in store-native (insertion) order
func (s *Store) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", ErrStoreUnavailable, err)
	}
	return tasks, nil
}

// ListOrdered returns every task grouped by bucket and sorted by position
func (s *Store) ListOrdered(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", ErrStoreUnavailable, err)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Type.Index() < tasks[j].Type.Index()
	})
	return tasks, nil
}

// Create stores a new task at the end of its bucket and returns it with its assigned id
func (s *Store) Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if req.Type == "" {
		req.Type = models.TypeMonthly
	}
	if err := validateEnums(req.Status, req.Type); err != nil {
		return nil, err
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Learnings:   req.Learnings,
		Status:      req.Status,
		Type:        req.Type,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Task{}).
			Where("type = ?", task.Type).
			Select("COALESCE(MAX(position), -1) + 1").
			Row().Scan(&task.Position)
		if err != nil {
			return err
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create task: %v", ErrStoreUnavailable, err)
	}
	return &task, nil
}

// UpdateByID overwrites the fields set in patch and bumps the revision.
// When the task changes bucket or position the affected buckets are
// renumbered in the same transaction.
func (s *Store) UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrValidation, *patch.Type)
	}

	var task models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		oldType, oldPos := task.Type, task.Position
		patch.Apply(&task)
		task.Revision++
		if task.Type == oldType && task.Position == oldPos {
			return tx.Save(&task).Error
		}

		order, err := bucketOrder(tx, task.Type, task.ID)
		if err != nil {
			return err
		}
		task.Position = min(max(task.Position, 0), len(order))
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		order = append(order[:task.Position:task.Position], append([]string{task.ID}, order[task.Position:]...)...)
		if err := renumber(tx, order, task.ID); err != nil {
			return err
		}
		if oldType == task.Type {
			return nil
		}
		order, err = bucketOrder(tx, oldType, task.ID)
		if err != nil {
			return err
		}
		return renumber(tx, order, "")
	})
	if err != nil {
		return nil, wrapLookup(err, id, "update")
	}
	return &task, nil
}

// DeleteByID removes the task with the given id and closes the gap it leaves in its bucket
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}
		order, err := bucketOrder(tx, task.Type, id)
		if err != nil {
			return err
		}
		return renumber(tx, order, "")
	})
	if err != nil {
		return wrapLookup(err, id, "delete")
	}
	return nil
}

// GetByID retrieves a task by id
func (s *Store) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, id, "get")
	}
	return &task, nil
}

// bucketOrder lists the ids of typ's tasks, except skip, in position order
func bucketOrder(tx *gorm.DB, typ models.Type, skip string) ([]string, error) {
	var ids []string
	err := tx.Model(&models.Task{}).
		Where("type = ? AND id <> ?", typ, skip).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// renumber writes each id's index as its position. skip is already saved.
func renumber(tx *gorm.DB, ids []string, skip string) error {
	for i, id := range ids {
		if id == skip {
			continue
		}
		err := tx.Model(&models.Task{}).Where("id = ?", id).UpdateColumn("position", i).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func validateEnums(status models.Status, typ models.Type) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, typ)
	}
	return nil
}

func wrapLookup(err error, id, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fmt.Errorf("%w: %s task %s: %v", ErrStoreUnavailable, op, id, err)
}
