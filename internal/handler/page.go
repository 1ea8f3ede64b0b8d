package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"strconv"
	"time"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/middleware"
	"vocab-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("quiz.html").Funcs(template.FuncMap{
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"isSelected": func(selected *int, i int) bool {
		return selected != nil && *selected == i
	},
}).ParseFS(templateFS, "templates/quiz.html"))

// pageView is the data rendered by quiz.html.
type pageView struct {
	Session  *dto.SessionResponse
	AudioURL string
}

// PageHandler serves the server-rendered quiz. Every POST redirects back to
// GET /quiz; rejected transitions simply leave the page as it was.
type PageHandler struct {
	quiz       service.QuizService
	audio      service.PronunciationService
	tokens     service.SessionTokenService
	cookieName string
	cookieTTL  time.Duration
}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler(
	quiz service.QuizService,
	audio service.PronunciationService,
	tokens service.SessionTokenService,
	cookieName string,
	cookieTTL time.Duration,
) *PageHandler {
	return &PageHandler{
		quiz:       quiz,
		audio:      audio,
		tokens:     tokens,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

// RegisterRoutes mounts the page routes on router.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.Mount)
	quiz := router.Group("/quiz", middleware.OptionalSession(h.tokens, h.cookieName))
	quiz.Get("/", h.Show)
	quiz.Post("/answer", h.Answer)
	quiz.Post("/next", h.Next)
	quiz.Post("/restart", h.Restart)
	quiz.Post("/pronounce", h.Pronounce)
}

// Mount starts a new session, the equivalent of a page reload.
func (h *PageHandler) Mount(c *fiber.Ctx) error {
	session, err := h.quiz.StartSession(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to start quiz session", zap.Error(err))
		return h.render(c, fiber.StatusInternalServerError, pageView{Session: &dto.SessionResponse{
			State:   string(domain.StateLoadFailed),
			Message: dto.MessageLoadFailed,
		}})
	}
	if err := middleware.SetSessionCookie(c, h.tokens, h.cookieName, session.ID, h.cookieTTL); err != nil {
		return err
	}
	return c.Redirect("/quiz", fiber.StatusSeeOther)
}

// Show renders the current session.
func (h *PageHandler) Show(c *fiber.Ctx) error {
	return h.withSession(c, func(id string) error {
		session, err := h.quiz.GetSession(c.UserContext(), id)
		if err != nil {
			return err
		}
		return h.render(c, fiber.StatusOK, pageView{Session: session})
	})
}

// Answer records the option posted in the "option" form field.
func (h *PageHandler) Answer(c *fiber.Ctx) error {
	return h.withSession(c, func(id string) error {
		option, err := strconv.Atoi(c.FormValue("option"))
		if err != nil {
			return h.back(c)
		}
		if _, err := h.quiz.SelectAnswer(c.UserContext(), id, option); err != nil {
			return err
		}
		return h.saved(c, id)
	})
}

// Next advances or submits the quiz.
func (h *PageHandler) Next(c *fiber.Ctx) error {
	return h.withSession(c, func(id string) error {
		if _, err := h.quiz.Advance(c.UserContext(), id); err != nil {
			return err
		}
		return h.saved(c, id)
	})
}

// Restart starts a new run in the same session.
func (h *PageHandler) Restart(c *fiber.Ctx) error {
	return h.withSession(c, func(id string) error {
		if _, err := h.quiz.Restart(c.UserContext(), id); err != nil {
			return err
		}
		return h.saved(c, id)
	})
}

// Pronounce renders the page with playback of the current word when a
// recording exists.
func (h *PageHandler) Pronounce(c *fiber.Ctx) error {
	return h.withSession(c, func(id string) error {
		session, err := h.quiz.GetSession(c.UserContext(), id)
		if err != nil {
			return err
		}
		view := pageView{Session: session}
		if session.Question != nil {
			if audio := h.audio.Lookup(c.UserContext(), session.Question.Word); audio.Available {
				view.AudioURL = audio.AudioURL
			}
		}
		return h.render(c, fiber.StatusOK, view)
	})
}

// withSession resolves the cookie session. Unknown sessions start over at
// "/", rejected transitions go back to the page.
func (h *PageHandler) withSession(c *fiber.Ctx, fn func(id string) error) error {
	id, ok := middleware.SessionID(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	err := fn(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSessionNotFound):
		c.ClearCookie(h.cookieName)
		return c.Redirect("/", fiber.StatusSeeOther)
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAnswerRequired),
		errors.Is(err, domain.ErrOptionOutOfRange):
		return h.back(c)
	default:
		logger.Get().Error("Quiz page request failed", zap.String("session_id", id), zap.Error(err))
		return h.render(c, fiber.StatusInternalServerError, pageView{Session: &dto.SessionResponse{
			ID:      id,
			State:   string(domain.StateLoadFailed),
			Message: dto.MessageLoadFailed,
		}})
	}
}

// saved re-issues the cookie after a stored transition so it expires together
// with the session, then goes back to the page.
func (h *PageHandler) saved(c *fiber.Ctx, id string) error {
	if err := middleware.SetSessionCookie(c, h.tokens, h.cookieName, id, h.cookieTTL); err != nil {
		return err
	}
	return h.back(c)
}

func (h *PageHandler) back(c *fiber.Ctx) error {
	return c.Redirect("/quiz", fiber.StatusSeeOther)
}

func (h *PageHandler) render(c *fiber.Ctx, status int, view pageView) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return domain.NewInternalError("failed to render quiz page", err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
