package service_test

import (
	"context"
	"testing"

	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TaskServiceSuite struct {
	suite.Suite
	svc   port.TaskService
	owner domain.User
	other domain.User
}

func (s *TaskServiceSuite) SetupTest() {
	db := InitTestDB()

	users := repository.NewUserRepository(db)
	s.svc = service.NewTaskService(repository.NewTaskRepository(db))

	ctx := context.Background()

	s.owner, _ = users.Create(ctx, factory.NewUser())
	s.other, _ = users.Create(ctx, factory.NewUser())
}

func TestTaskServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) TestCreateAssignsOwnerAndUUID() {
	task, err := s.svc.Create(context.Background(), s.owner.ID, &request.TaskRequest{
		Description: "buy milk",
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), s.owner.ID, task.UserId)
	assert.False(s.T(), task.Completed)
	Expect(task.UUID.String()).NotTo(BeEmpty())
}

func (s *TaskServiceSuite) TestUpdatePartial() {
	ctx := context.Background()

	task, _ := s.svc.Create(ctx, s.owner.ID, &request.TaskRequest{Description: "original"})

	completed := true
	updated, err := s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
		Completed: &completed,
	})

	assert.NoError(s.T(), err)
	assert.True(s.T(), updated.Completed)
	assert.Equal(s.T(), "original", updated.Description)
}

func (s *TaskServiceSuite) TestUpdateWithNoFieldsReturnsCurrent() {
	ctx := context.Background()

	task, _ := s.svc.Create(ctx, s.owner.ID, &request.TaskRequest{Description: "unchanged"})

	current, err := s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), task.UUID, current.UUID)
}

func (s *TaskServiceSuite) TestCrossOwnerAccessIsNotFound() {
	ctx := context.Background()

	task, _ := s.svc.Create(ctx, s.owner.ID, &request.TaskRequest{Description: "private"})

	_, err := s.svc.GetByUUID(ctx, s.other.ID, task.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	description := "hijacked"
	_, err = s.svc.Update(ctx, s.other.ID, task.UUID.String(), &request.UpdateTaskRequest{
		Description: &description,
	})
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.svc.DeleteByUUID(ctx, s.other.ID, task.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *TaskServiceSuite) TestListFilters() {
	ctx := context.Background()

	_, _ = s.svc.Create(ctx, s.owner.ID, &request.TaskRequest{Description: "done", Completed: true})
	_, _ = s.svc.Create(ctx, s.owner.ID, &request.TaskRequest{Description: "pending"})

	completed := false
	tasks, err := s.svc.List(ctx, s.owner.ID, port.TaskQuery{Completed: &completed})

	assert.NoError(s.T(), err)
	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Description).To(Equal("pending"))
}
