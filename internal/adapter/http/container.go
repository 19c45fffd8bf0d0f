package http

import (
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/telemetry"
)

// Container holds the explicitly wired object graph: repositories into
// services into handlers. No runtime injection framework.
type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	UserService port.UserService
	TodoService port.TodoService

	UserHandler *handler.UserHandler
	TodoHandler *handler.TodoHandler
}

func NewContainer(userRepo port.UserRepository, todoRepo port.TodoRepository, metrics *telemetry.AppMetrics) *Container {
	userSvc := service.NewUserService(userRepo)
	todoSvc := service.NewTodoService(todoRepo, userRepo)

	return &Container{
		UserRepo: userRepo,
		TodoRepo: todoRepo,

		UserService: userSvc,
		TodoService: todoSvc,

		UserHandler: handler.NewUserHandler(userSvc, metrics),
		TodoHandler: handler.NewTodoHandler(todoSvc, metrics),
	}
}
