package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

// TaskQuery carries the optional filter/sort/pagination for task listings.
// Zero values mean "no constraint".
type TaskQuery struct {
	Completed *bool
	SortField string
	SortDesc  bool
	Limit     int
	Skip      int
}

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	List(ctx context.Context, userID int, query TaskQuery) ([]domain.Task, error)
	GetByUUID(ctx context.Context, userID int, uuid string) (domain.Task, error)
	Update(ctx context.Context, userID int, uuid string, columns map[string]any) (domain.Task, error)
	DeleteByUUID(ctx context.Context, userID int, uuid string) (domain.Task, error)
}

type TaskService interface {
	Create(ctx context.Context, userID int, req *request.TaskRequest) (domain.Task, error)
	List(ctx context.Context, userID int, query TaskQuery) ([]domain.Task, error)
	GetByUUID(ctx context.Context, userID int, uuid string) (domain.Task, error)
	Update(ctx context.Context, userID int, uuid string, req *request.UpdateTaskRequest) (domain.Task, error)
	DeleteByUUID(ctx context.Context, userID int, uuid string) (domain.Task, error)
}
