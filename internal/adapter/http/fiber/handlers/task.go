package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type TaskHandler struct {
	service ports.TaskService
	log     *zap.Logger
}

func NewTaskHandler(service ports.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: log}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.service.CreateTask(c.Context(), userID(c), input)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, task, "Task created")
}

// List supports ?status=&priority=&category=&goalId=
func (h *TaskHandler) List(c *fiber.Ctx) error {
	filter := domain.TaskFilter{
		Status:   domain.TaskStatus(c.Query("status")),
		Priority: domain.TaskPriority(c.QueryInt("priority", 0)),
		Category: c.Query("category"),
		GoalID:   c.Query("goalId"),
	}

	tasks, err := h.service.GetTasks(c.Context(), userID(c), filter)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, tasks, "")
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	task, err := h.service.GetTask(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, task, "")
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var patch domain.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.service.UpdateTask(c.Context(), c.Params("id"), userID(c), patch)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, task, "Task updated")
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteTask(c.Context(), c.Params("id"), userID(c)); err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, nil, "Task deleted")
}

func (h *TaskHandler) Overdue(c *fiber.Ctx) error {
	tasks, err := h.service.GetOverdueTasks(c.Context(), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, tasks, "")
}
