package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"

	factory "todoapi/pkg/test/factory"
)

var ctx = context.Background()

type UserRepositoryTestSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.TodoRepo = repository.NewTodoRepository(db)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreate_GeneratesID() {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Username": "alice",
		"Email":    "alice@example.com",
	}))

	Expect(err).To(BeNil())
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.Username).To(Equal("alice"))
	Expect(user.Email).To(Equal("alice@example.com"))
}

func (s *UserRepositoryTestSuite) TestCreate_IDsAreMonotonic() {
	first, _ := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "u1"}))
	second, _ := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "u2"}))

	Expect(second.ID).To(BeNumerically(">", first.ID))
}

func (s *UserRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.UserRepo.GetByID(ctx, 12345)

	Expect(errors.Is(err, domain.ErrUserNotFound)).To(BeTrue())
}

func (s *UserRepositoryTestSuite) TestUpdate_DoesNotTouchUsername() {
	user, _ := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Username": "bob",
		"FullName": "Bob",
	}))

	user.FullName = "Robert"
	user.Username = "someone-else" // not part of the UPDATE statement

	updated, err := s.UserRepo.Update(ctx, user)

	Expect(err).To(BeNil())
	Expect(updated.FullName).To(Equal("Robert"))
	Expect(updated.Username).To(Equal("bob"))
}

func (s *UserRepositoryTestSuite) TestDelete_RemovesOwnedTodos() {
	user, _ := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "carol"}))

	todo, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title":  "Task",
		"UserID": user.ID,
	}))
	assert.NoError(s.T(), err)

	err = s.UserRepo.Delete(ctx, user.ID)
	assert.NoError(s.T(), err)

	_, err = s.TodoRepo.GetByID(ctx, todo.ID)
	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *UserRepositoryTestSuite) TestDelete_NotFound() {
	err := s.UserRepo.Delete(ctx, 98765)

	Expect(errors.Is(err, domain.ErrUserNotFound)).To(BeTrue())
}
