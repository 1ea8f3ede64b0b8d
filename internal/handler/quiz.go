package handler

import (
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"
	"vocab-quiz/internal/middleware"
	"vocab-quiz/internal/service"
	"vocab-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles the JSON quiz API
type QuizHandler struct {
	service   service.QuizService
	audio     service.PronunciationService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, audio service.PronunciationService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		audio:     audio,
		validator: validation.NewValidator(),
	}
}

// RegisterRoutes mounts the API routes on router.
func (h *QuizHandler) RegisterRoutes(router fiber.Router) {
	vm := middleware.NewValidationMiddleware()

	sessions := router.Group("/sessions")
	sessions.Post("/", h.StartSession)
	sessions.Get("/:id", vm.ValidateSessionID(), h.GetSession)
	sessions.Post("/:id/answers", vm.ValidateSessionID(), h.SelectAnswer)
	sessions.Post("/:id/advance", vm.ValidateSessionID(), h.Advance)
	sessions.Post("/:id/restart", vm.ValidateSessionID(), h.Restart)

	router.Get("/pronunciations/:word", vm.ValidateWord(), h.GetPronunciation)
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Samples a fresh set of questions. A session whose questions could not be loaded is returned with state load_failed.
// @Tags quiz
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *QuizHandler) StartSession(c *fiber.Ctx) error {
	resp, err := h.service.StartSession(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get a quiz session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.UserContext(), sessionIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SelectAnswer godoc
// @Summary Select an answer
// @Description Records the option for the current question, replacing any earlier choice.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Param request body dto.AnswerRequest true "Selected option"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *QuizHandler) SelectAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateAnswerRequest(req.OptionIndex); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SelectAnswer(c.UserContext(), sessionIDParam(c), *req.OptionIndex)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance godoc
// @Summary Go to the next question
// @Description Moves to the next question, or submits and scores the quiz on the last one. Rejected with 409 while the current question is unanswered.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/advance [post]
func (h *QuizHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.service.Advance(c.UserContext(), sessionIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Restart godoc
// @Summary Restart a finished quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/restart [post]
func (h *QuizHandler) Restart(c *fiber.Ctx) error {
	resp, err := h.service.Restart(c.UserContext(), sessionIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetPronunciation godoc
// @Summary Look up pronunciation audio
// @Description Best effort. available is false when no recording was found or the dictionary could not be reached.
// @Tags pronunciation
// @Produce json
// @Param word path string true "Word"
// @Success 200 {object} dto.PronunciationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /pronunciations/{word} [get]
func (h *QuizHandler) GetPronunciation(c *fiber.Ctx) error {
	word, _ := c.Locals(middleware.ValidatedWordKey).(string)
	return c.JSON(h.audio.Lookup(c.UserContext(), word))
}

func sessionIDParam(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.ValidatedSessionIDKey).(string); ok {
		return id
	}
	return c.Params("id")
}
