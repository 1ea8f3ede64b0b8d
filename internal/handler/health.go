package handler

import (
	"context"
	"time"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"
	"vocab-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the service can serve quizzes.
type HealthHandler struct {
	quiz  service.QuizService
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(quiz service.QuizService, cache domain.Cache) *HealthHandler {
	return &HealthHandler{quiz: quiz, cache: cache}
}

// Check godoc
// @Summary Health check
// @Description Reports the loaded bank size and session store reachability. Degraded when the bank is empty or the store is down.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Questions: h.quiz.BankSize(), Cache: "ok"}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		resp.Cache = err.Error()
		resp.Status = "degraded"
	}
	if resp.Questions == 0 {
		resp.Status = "degraded"
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
