package repository_test

import (
	"context"
	"testing"

	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepositorySuite struct {
	suite.Suite
	users port.UserRepository
	tasks port.TaskRepository
}

func (s *UserRepositorySuite) SetupTest() {
	db := InitTestDB()

	s.users = repository.NewUserRepository(db)
	s.tasks = repository.NewTaskRepository(db)
}

func TestUserRepositorySuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) TestCreateUser() {
	user, err := s.users.Create(context.Background(), factory.NewUser(map[string]any{
		"Name":  "Test User",
		"Email": "test@example.com",
	}))

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), user.ID)
	assert.Equal(s.T(), "Test User", user.Name)
	assert.Equal(s.T(), "test@example.com", user.Email)
}

func (s *UserRepositorySuite) TestCreateUserDuplicateEmail() {
	ctx := context.Background()

	_, err := s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "dup@example.com"}))
	assert.NoError(s.T(), err)

	_, err = s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "dup@example.com"}))
	assert.ErrorIs(s.T(), err, domain.ErrDuplicateEmail)
}

func (s *UserRepositorySuite) TestGetByEmail() {
	ctx := context.Background()

	created, _ := s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "find@example.com"}))

	user, err := s.users.GetByEmail(ctx, "find@example.com")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, user.ID)

	_, err = s.users.GetByEmail(ctx, "absent@example.com")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *UserRepositorySuite) TestUpdateColumns() {
	ctx := context.Background()

	created, _ := s.users.Create(ctx, factory.NewUser())

	updated, err := s.users.Update(ctx, created.ID, map[string]any{
		"name": "Renamed",
		"age":  30,
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Renamed", updated.Name)
	Expect(updated.Age).NotTo(BeNil())
	Expect(*updated.Age).To(Equal(30))

	_, err = s.users.Update(ctx, created.ID+1000, map[string]any{"name": "Ghost"})
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *UserRepositorySuite) TestUpdateDuplicateEmail() {
	ctx := context.Background()

	_, _ = s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "taken@example.com"}))
	other, _ := s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "other@example.com"}))

	_, err := s.users.Update(ctx, other.ID, map[string]any{"email": "taken@example.com"})
	assert.ErrorIs(s.T(), err, domain.ErrDuplicateEmail)
}

func (s *UserRepositorySuite) TestTokenAllowList() {
	ctx := context.Background()

	user, _ := s.users.Create(ctx, factory.NewUser())

	assert.NoError(s.T(), s.users.AppendToken(ctx, user.ID, "token-a"))
	assert.NoError(s.T(), s.users.AppendToken(ctx, user.ID, "token-b"))

	resolved, err := s.users.GetByUUIDAndToken(ctx, user.UUID.String(), "token-a")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, resolved.ID)

	assert.NoError(s.T(), s.users.RemoveToken(ctx, user.ID, "token-a"))

	_, err = s.users.GetByUUIDAndToken(ctx, user.UUID.String(), "token-a")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.users.GetByUUIDAndToken(ctx, user.UUID.String(), "token-b")
	assert.NoError(s.T(), err)
}

func (s *UserRepositorySuite) TestClearTokens() {
	ctx := context.Background()

	user, _ := s.users.Create(ctx, factory.NewUser())

	_ = s.users.AppendToken(ctx, user.ID, "token-a")
	_ = s.users.AppendToken(ctx, user.ID, "token-b")

	assert.NoError(s.T(), s.users.ClearTokens(ctx, user.ID))

	_, err := s.users.GetByUUIDAndToken(ctx, user.UUID.String(), "token-a")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.users.GetByUUIDAndToken(ctx, user.UUID.String(), "token-b")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *UserRepositorySuite) TestAvatarRoundtrip() {
	ctx := context.Background()

	user, _ := s.users.Create(ctx, factory.NewUser())

	_, err := s.users.GetAvatarByUUID(ctx, user.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	assert.NoError(s.T(), s.users.SetAvatar(ctx, user.ID, []byte{0x89, 0x50, 0x4e, 0x47}))

	avatar, err := s.users.GetAvatarByUUID(ctx, user.UUID.String())
	assert.NoError(s.T(), err)
	Expect(avatar).To(Equal([]byte{0x89, 0x50, 0x4e, 0x47}))

	assert.NoError(s.T(), s.users.SetAvatar(ctx, user.ID, nil))

	_, err = s.users.GetAvatarByUUID(ctx, user.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *UserRepositorySuite) TestDeleteWithTasksCascades() {
	ctx := context.Background()

	user, _ := s.users.Create(ctx, factory.NewUser())
	survivor, _ := s.users.Create(ctx, factory.NewUser())

	task, _ := s.tasks.Create(ctx, factory.NewTask(map[string]any{"UserId": user.ID}))
	kept, _ := s.tasks.Create(ctx, factory.NewTask(map[string]any{"UserId": survivor.ID}))

	_ = s.users.AppendToken(ctx, user.ID, "token-a")

	assert.NoError(s.T(), s.users.DeleteWithTasks(ctx, user.ID))

	_, err := s.users.GetByUUID(ctx, user.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.tasks.GetByUUID(ctx, user.ID, task.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.tasks.GetByUUID(ctx, survivor.ID, kept.UUID.String())
	assert.NoError(s.T(), err)
}

func (s *UserRepositorySuite) TestDeleteWithTasksMissingUser() {
	err := s.users.DeleteWithTasks(context.Background(), 424242)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}
