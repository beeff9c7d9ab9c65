package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
	"github.com/segyhp/budget-planner/pkg/utils"
)

const taskColumns = `id, user_id, title, description, due_date, priority, status, is_completed,
	alert_offset_minutes, alert_channel, alert_email, alert_phone, last_alerted_at, created_at`

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (:id, :user_id, :title, :description, :due_date, :priority, :status, :is_completed,
			:alert_offset_minutes, :alert_channel, :alert_email, :alert_phone, :last_alerted_at, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, task)
	return err
}

func (r *taskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.GetContext(ctx, &task, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error) {
	var (
		tasks []*domain.Task
		err   error
	)

	if filter.HasMonth() {
		_, next := utils.MonthRange(filter.Year, filter.Month)
		query := `
			SELECT ` + taskColumns + `
			FROM tasks
			WHERE user_id = $1 AND due_date < $2 AND status <> 'completed'
			ORDER BY created_at DESC, id
		`
		err = r.db.SelectContext(ctx, &tasks, query, userID, next)
	} else {
		query := `
			SELECT ` + taskColumns + `
			FROM tasks
			WHERE user_id = $1
			ORDER BY created_at DESC, id
		`
		err = r.db.SelectContext(ctx, &tasks, query, userID)
	}
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = :title, description = :description, due_date = :due_date, priority = :priority,
			status = :status, is_completed = :is_completed, alert_offset_minutes = :alert_offset_minutes,
			alert_channel = :alert_channel, alert_email = :alert_email, alert_phone = :alert_phone,
			last_alerted_at = :last_alerted_at
		WHERE id = :id AND user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, task)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *taskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *taskRepository) ListOpenWithDueDate(ctx context.Context, userID *uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE status <> 'completed' AND due_date IS NOT NULL AND ($1::uuid IS NULL OR user_id = $1)
		ORDER BY due_date, id
	`

	var tasks []*domain.Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) MarkOverdue(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = $2 WHERE id = $1`, id, domain.TaskStatusOverdue)
	return err
}

func (r *taskRepository) MarkAlerted(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET last_alerted_at = $2 WHERE id = $1`, id, at)
	return err
}
