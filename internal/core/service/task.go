package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
)

type TaskService struct {
	repo port.TaskRepository
}

func NewTaskService(repo port.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (ts *TaskService) Create(ctx context.Context, userID int, req *request.TaskRequest) (domain.Task, error) {
	now := time.Now().UTC()

	task := domain.Task{
		UUID:        uuid.New(),
		Description: req.Description,
		Completed:   req.Completed,
		UserId:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := ts.repo.Create(ctx, task)

	if err != nil {
		slog.Error("Task#Create", "error", err)
		return domain.Task{}, err
	}

	return saved, nil
}

func (ts *TaskService) List(ctx context.Context, userID int, query port.TaskQuery) ([]domain.Task, error) {
	return ts.repo.List(ctx, userID, query)
}

func (ts *TaskService) GetByUUID(ctx context.Context, userID int, uid string) (domain.Task, error) {
	return ts.repo.GetByUUID(ctx, userID, uid)
}

func (ts *TaskService) Update(ctx context.Context, userID int, uid string, req *request.UpdateTaskRequest) (domain.Task, error) {
	columns := map[string]any{}

	if req.Description != nil {
		columns["description"] = *req.Description
	}

	if req.Completed != nil {
		columns["completed"] = *req.Completed
	}

	if len(columns) == 0 {
		return ts.repo.GetByUUID(ctx, userID, uid)
	}

	return ts.repo.Update(ctx, userID, uid, columns)
}

func (ts *TaskService) DeleteByUUID(ctx context.Context, userID int, uid string) (domain.Task, error) {
	return ts.repo.DeleteByUUID(ctx, userID, uid)
}
