package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type GoalHandler struct {
	service ports.GoalService
	log     *zap.Logger
}

func NewGoalHandler(service ports.GoalService, log *zap.Logger) *GoalHandler {
	return &GoalHandler{service: service, log: log}
}

type ProgressRequest struct {
	Percentage *int `json:"percentage"`
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	goal, err := h.service.CreateGoal(c.Context(), userID(c), input)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, goal, "Goal created")
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	filter := domain.GoalFilter{
		Status:   domain.GoalStatus(c.Query("status")),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
	}

	goals, err := h.service.GetGoals(c.Context(), userID(c), filter)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, goals, "")
}

func (h *GoalHandler) Get(c *fiber.Ctx) error {
	goal, err := h.service.GetGoal(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, goal, "")
}

func (h *GoalHandler) Update(c *fiber.Ctx) error {
	var patch domain.GoalPatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	goal, err := h.service.UpdateGoal(c.Context(), c.Params("id"), userID(c), patch)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, goal, "Goal updated")
}

func (h *GoalHandler) UpdateProgress(c *fiber.Ctx) error {
	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil || req.Percentage == nil {
		return fail(c, fiber.StatusBadRequest, "Percentage is required")
	}

	goal, err := h.service.UpdateGoalProgress(c.Context(), c.Params("id"), userID(c), *req.Percentage)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, goal, "Progress updated")
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteGoal(c.Context(), c.Params("id"), userID(c)); err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, nil, "Goal deleted")
}
