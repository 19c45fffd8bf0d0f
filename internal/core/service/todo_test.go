package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
)

type TodoServiceTestSuite struct {
	suite.Suite
	Users    *service.UserService
	Todos    *service.TodoService
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
}

func (s *TodoServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.TodoRepo = repository.NewTodoRepository(db)

	s.Users = service.NewUserService(s.UserRepo)
	s.Todos = service.NewTodoService(s.TodoRepo, s.UserRepo)
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) createUser(username string) domain.User {
	user, err := s.Users.Create(context.Background(), domain.User{Username: username})

	Expect(err).To(BeNil())

	return user
}

func (s *TodoServiceTestSuite) TestCreateStoresCallerTimestamps() {
	ctx := context.Background()
	user := s.createUser("alice")

	// Timestamps are client-supplied and trusted verbatim, even in the past.
	createdAt := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	updatedAt := time.Date(2020, 6, 7, 8, 9, 10, 0, time.UTC)

	todo, err := s.Todos.Create(ctx, user.ID, domain.Todo{
		Title:       "Buy milk",
		Description: "2%",
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	})

	Expect(err).To(BeNil())
	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Title).To(Equal("Buy milk"))
	Expect(todo.Description).To(Equal("2%"))
	Expect(todo.UserID).To(Equal(user.ID))
	Expect(todo.CreatedAt).To(BeTemporally("==", createdAt))
	Expect(todo.UpdatedAt).To(BeTemporally("==", updatedAt))
}

func (s *TodoServiceTestSuite) TestCreate_UserNotFound_PersistsNothing() {
	ctx := context.Background()

	_, err := s.Todos.Create(ctx, 9999, domain.Todo{Title: "orphan"})

	Expect(errors.Is(err, domain.ErrUserNotFound)).To(BeTrue())

	todos, err := s.Todos.GetByUser(ctx, 9999)

	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestGetByUser_EmptyForUserWithoutTodos() {
	ctx := context.Background()
	user := s.createUser("bob")

	todos, err := s.Todos.GetByUser(ctx, user.ID)

	Expect(err).To(BeNil())
	Expect(todos).NotTo(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestGetByUser_OnlyOwnersTodos() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	alice := s.createUser("alice")
	bob := s.createUser("bob")

	s.Todos.Create(ctx, alice.ID, domain.Todo{Title: "hers", CreatedAt: now, UpdatedAt: now})
	s.Todos.Create(ctx, bob.ID, domain.Todo{Title: "his", CreatedAt: now, UpdatedAt: now})

	todos, err := s.Todos.GetByUser(ctx, alice.ID)

	Expect(err).To(BeNil())
	Expect(len(todos)).To(Equal(1))
	Expect(todos[0].Title).To(Equal("hers"))
}

func (s *TodoServiceTestSuite) TestUpdateRoundTrip() {
	ctx := context.Background()
	user := s.createUser("carol")

	t1 := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	created, _ := s.Todos.Create(ctx, user.ID, domain.Todo{
		Title:       "Buy milk",
		Description: "2%",
		CreatedAt:   t1,
		UpdatedAt:   t1,
	})

	t2 := time.Date(2021, 3, 5, 5, 6, 7, 0, time.UTC)
	updated, err := s.Todos.Update(ctx, created.ID, domain.Todo{
		Title:       "Buy oat milk",
		Description: "barista",
		CreatedAt:   t2,
		UpdatedAt:   t2,
	})

	Expect(err).To(BeNil())

	found, err := s.Todos.GetByID(ctx, created.ID)

	Expect(err).To(BeNil())
	Expect(found.Title).To(Equal("Buy oat milk"))
	Expect(found.Description).To(Equal("barista"))
	Expect(found.CreatedAt).To(BeTemporally("==", t2))
	Expect(found.UpdatedAt).To(BeTemporally("==", t2))
	Expect(found.UserID).To(Equal(user.ID))
	Expect(found.UserID).To(Equal(updated.UserID))
}

func (s *TodoServiceTestSuite) TestUpdateCannotReassignOwner() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	alice := s.createUser("alice")
	bob := s.createUser("bob")

	created, _ := s.Todos.Create(ctx, alice.ID, domain.Todo{Title: "task", CreatedAt: now, UpdatedAt: now})

	// UserID in the update payload must be ignored.
	updated, err := s.Todos.Update(ctx, created.ID, domain.Todo{
		Title:     "task",
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    bob.ID,
	})

	Expect(err).To(BeNil())
	Expect(updated.UserID).To(Equal(alice.ID))
}

func (s *TodoServiceTestSuite) TestUpdate_NotFound() {
	_, err := s.Todos.Update(context.Background(), 9999, domain.Todo{Title: "ghost"})

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestDeleteLeavesOwnerIntact() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	user := s.createUser("dave")
	created, _ := s.Todos.Create(ctx, user.ID, domain.Todo{Title: "task", CreatedAt: now, UpdatedAt: now})

	err := s.Todos.Delete(ctx, created.ID)
	Expect(err).To(BeNil())

	_, err = s.Todos.GetByID(ctx, created.ID)
	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())

	_, err = s.Users.GetByID(ctx, user.ID)
	Expect(err).To(BeNil())
}

func (s *TodoServiceTestSuite) TestDelete_NotFound() {
	err := s.Todos.Delete(context.Background(), 9999)

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}
