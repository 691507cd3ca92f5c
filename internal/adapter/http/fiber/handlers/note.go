package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type NoteHandler struct {
	service ports.NoteService
	log     *zap.Logger
}

func NewNoteHandler(service ports.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{service: service, log: log}
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	note, err := h.service.CreateNote(c.Context(), userID(c), input)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, note, "Note created")
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	filter := domain.NoteFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}

	notes, err := h.service.GetNotes(c.Context(), userID(c), filter)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, notes, "")
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	note, err := h.service.GetNote(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, note, "")
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	var patch domain.NotePatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	note, err := h.service.UpdateNote(c.Context(), c.Params("id"), userID(c), patch)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, note, "Note updated")
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteNote(c.Context(), c.Params("id"), userID(c)); err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, nil, "Note deleted")
}
