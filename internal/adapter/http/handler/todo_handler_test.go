package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"

	factory "todoapi/pkg/test/factory"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

type TodoHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	Router   *gin.Engine
}

func (s *TodoHandlerSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.TodoRepo = repository.NewTodoRepository(db)

	userSvc := service.NewUserService(s.UserRepo)
	todoSvc := service.NewTodoService(s.TodoRepo, s.UserRepo)

	s.Router = routes.SetupRouterForTests(routes.HandlersConfig{
		UserHandler: handler.NewUserHandler(userSvc, nil),
		TodoHandler: handler.NewTodoHandler(todoSvc, nil),
	})
}

func TestTodoHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoHandlerSuite))
}

type todoEnvelope struct {
	Data response.TodoResponse `json:"data"`
}

type todoListEnvelope struct {
	Data []response.TodoResponse `json:"data"`
}

func (s *TodoHandlerSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer

	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *TodoHandlerSuite) createUser(username string) domain.User {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Username": username,
	}))

	Expect(err).To(BeNil())

	return user
}

func (s *TodoHandlerSuite) TestCreateTodo() {
	user := s.createUser("alice")
	now := time.Now().UTC().Truncate(time.Second)

	rr := s.doJSON("POST", "/api/todos/"+itoa(user.ID), map[string]any{
		"title":       "Buy milk",
		"description": "2%",
		"created_at":  now,
		"updated_at":  now,
	})

	Expect(rr.Code).To(Equal(http.StatusOK))

	var envelope todoEnvelope
	json.Unmarshal(rr.Body.Bytes(), &envelope)

	Expect(envelope.Data.ID).To(BeNumerically(">", 0))
	Expect(envelope.Data.Title).To(Equal("Buy milk"))
	Expect(envelope.Data.UserID).To(Equal(user.ID))
}

func (s *TodoHandlerSuite) TestCreateTodo_OwnerNotFound() {
	now := time.Now().UTC().Truncate(time.Second)

	rr := s.doJSON("POST", "/api/todos/9999", map[string]any{
		"title":      "orphan",
		"created_at": now,
		"updated_at": now,
	})

	Expect(rr.Code).To(Equal(http.StatusNotFound))

	var envelope response.ErrorResponse
	json.Unmarshal(rr.Body.Bytes(), &envelope)

	Expect(envelope.Error.Code).To(Equal("NOT_FOUND"))
}

func (s *TodoHandlerSuite) TestGetTodosByUser_Empty() {
	user := s.createUser("bob")

	rr := s.doJSON("GET", "/api/todos?user_id="+itoa(user.ID), nil)

	Expect(rr.Code).To(Equal(http.StatusOK))

	var envelope todoListEnvelope
	json.Unmarshal(rr.Body.Bytes(), &envelope)

	Expect(envelope.Data).To(BeEmpty())
}

func (s *TodoHandlerSuite) TestGetTodosByUser_MissingParam() {
	rr := s.doJSON("GET", "/api/todos", nil)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TodoHandlerSuite) TestGetTodoByID_NotFound() {
	rr := s.doJSON("GET", "/api/todos/777", nil)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

// Full lifecycle: create, update, read back, cascade on user delete.
func (s *TodoHandlerSuite) TestTodoLifecycle() {
	user := s.createUser("alice")
	t1 := time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC)

	rr := s.doJSON("POST", "/api/todos/"+itoa(user.ID), map[string]any{
		"title":       "Buy milk",
		"description": "2%",
		"created_at":  t1,
		"updated_at":  t1,
	})
	Expect(rr.Code).To(Equal(http.StatusOK))

	var created todoEnvelope
	json.Unmarshal(rr.Body.Bytes(), &created)

	rr = s.doJSON("PUT", "/api/todos/"+itoa(created.Data.ID), map[string]any{
		"title":       "Buy oat milk",
		"description": "2%",
		"created_at":  t1,
		"updated_at":  t1.Add(time.Hour),
	})
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.doJSON("GET", "/api/todos/"+itoa(created.Data.ID), nil)
	Expect(rr.Code).To(Equal(http.StatusOK))

	var fetched todoEnvelope
	json.Unmarshal(rr.Body.Bytes(), &fetched)

	Expect(fetched.Data.Title).To(Equal("Buy oat milk"))
	Expect(fetched.Data.UserID).To(Equal(user.ID))

	rr = s.doJSON("DELETE", "/api/users/"+itoa(user.ID), nil)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	rr = s.doJSON("GET", "/api/todos/"+itoa(created.Data.ID), nil)
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestUpdateTodo_NotFound() {
	now := time.Now().UTC().Truncate(time.Second)

	rr := s.doJSON("PUT", "/api/todos/4242", map[string]any{
		"title":      "ghost",
		"created_at": now,
		"updated_at": now,
	})

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestDeleteTodo() {
	user := s.createUser("carol")

	todo, _ := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title":  "short lived",
		"UserID": user.ID,
	}))

	rr := s.doJSON("DELETE", "/api/todos/"+itoa(todo.ID), nil)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	// Owner is untouched.
	rr = s.doJSON("GET", "/api/users/"+itoa(user.ID), nil)
	Expect(rr.Code).To(Equal(http.StatusOK))
}

func (s *TodoHandlerSuite) TestDeleteTodo_NotFound() {
	rr := s.doJSON("DELETE", "/api/todos/31337", nil)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}
