package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const taskColumnList = "id, uuid, description, completed, user_id, created_at, updated_at"

var taskColumns = []string{"id", "uuid", "description", "completed", "user_id", "created_at", "updated_at"}

type TaskRepository struct {
	db *postgres.DB
}

func NewTaskRepository(db *postgres.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var task domain.Task

	err := row.Scan(
		&task.ID,
		&task.UUID,
		&task.Description,
		&task.Completed,
		&task.UserId,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("uuid", "description", "completed", "user_id", "created_at", "updated_at").
		Values(task.UUID, task.Description, task.Completed, task.UserId, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING " + taskColumnList)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	saved, err := scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	return saved, nil
}

func (tr *TaskRepository) List(ctx context.Context, userID int, q port.TaskQuery) ([]domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID})

	if q.Completed != nil {
		query = query.Where(sq.Eq{"completed": *q.Completed})
	}

	if q.SortField != "" {
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		query = query.OrderBy(q.SortField + " " + direction)
	} else {
		query = query.OrderBy("created_at ASC", "id ASC")
	}

	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}

	if q.Skip > 0 {
		query = query.Offset(uint64(q.Skip))
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error fetching tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		task, err := scanTask(rows)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, userID int, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_id": userID}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	task, err := scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Update(ctx context.Context, userID int, uid string, columns map[string]any) (domain.Task, error) {
	query := tr.db.QueryBuilder.Update("tasks").
		SetMap(columns).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + taskColumnList)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	updated, err := scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.Task{}, err
	}

	return updated, nil
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, userID int, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + taskColumnList)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	deleted, err := scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.Task{}, err
	}

	return deleted, nil
}
