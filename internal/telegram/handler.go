package telegram

import (
	"context"
	"errors"
	"strconv"
	"time"

	"vocab-quiz/internal/cache"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Handler renders quiz sessions in Telegram chats. Each chat has at most one
// current session; its id is kept in the cache.
type Handler struct {
	bot     BotAPI
	quiz    service.QuizService
	audio   service.PronunciationService
	chats   domain.Cache
	chatTTL time.Duration
}

func NewHandler(
	bot BotAPI,
	quiz service.QuizService,
	audio service.PronunciationService,
	chats domain.Cache,
	chatTTL time.Duration,
) *Handler {
	return &Handler{
		bot:     bot,
		quiz:    quiz,
		audio:   audio,
		chats:   chats,
		chatTTL: chatTTL,
	}
}

// Start polls for updates until ctx is done.
func (h *Handler) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "quiz":
		session, err := h.quiz.StartSession(ctx)
		if err != nil {
			logger.Get().Error("Failed to start quiz session", zap.Int64("chat_id", chatID), zap.Error(err))
			h.send(newHTMLMessage(chatID, msgInternalError))
			return
		}
		if err := h.rememberChat(ctx, chatID, session.ID); err != nil {
			logger.Get().Error("Failed to remember chat session", zap.Int64("chat_id", chatID), zap.Error(err))
			h.send(newHTMLMessage(chatID, msgInternalError))
			return
		}
		text, kb := renderSession(session)
		out := newHTMLMessage(chatID, text)
		if kb != nil {
			out.ReplyMarkup = kb
		}
		h.send(out)
	default:
		h.send(newHTMLMessage(chatID, msgHelp))
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answer(cb, "", false)
		return
	}
	chatID := cb.Message.Chat.ID

	sessionID, err := h.chats.Get(ctx, chatKey(chatID))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Failed to load chat session", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		h.answer(cb, msgSessionExpired, true)
		return
	}

	action, arg := parseCallback(cb.Data)
	var session *dto.SessionResponse

	switch action {
	case cbAnswer:
		i, convErr := strconv.Atoi(arg)
		if convErr != nil {
			h.answer(cb, "", false)
			return
		}
		session, err = h.quiz.SelectAnswer(ctx, sessionID, i)
	case cbNext:
		session, err = h.quiz.Advance(ctx, sessionID)
	case cbRestart:
		session, err = h.quiz.Restart(ctx, sessionID)
	case cbSay:
		h.pronounce(ctx, cb, sessionID)
		return
	default:
		h.answer(cb, "", false)
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAnswerRequired):
		h.answer(cb, msgSelectFirst, true)
		return
	case errors.Is(err, domain.ErrSessionNotFound):
		h.answer(cb, msgSessionExpired, true)
		return
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrOptionOutOfRange):
		h.answer(cb, "", false)
		return
	default:
		logger.Get().Error("Quiz callback failed", zap.Int64("chat_id", chatID), zap.String("data", cb.Data), zap.Error(err))
		h.answer(cb, msgInternalError, true)
		return
	}

	// The session TTL was renewed by the transition; keep the chat mapping in step.
	if err := h.rememberChat(ctx, chatID, sessionID); err != nil {
		logger.Get().Warn("Failed to refresh chat session", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	text, kb := renderSession(session)
	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = kb
	h.send(edit)
	h.answer(cb, "", false)
}

// pronounce sends the recording of the current word as an audio message.
func (h *Handler) pronounce(ctx context.Context, cb *tgbotapi.CallbackQuery, sessionID string) {
	session, err := h.quiz.GetSession(ctx, sessionID)
	if err != nil || session.Question == nil {
		h.answer(cb, "", false)
		return
	}

	audio := h.audio.Lookup(ctx, session.Question.Word)
	if !audio.Available {
		h.answer(cb, msgNoAudio, false)
		return
	}

	msg := tgbotapi.NewAudio(cb.Message.Chat.ID, tgbotapi.FileURL(audio.AudioURL))
	msg.Title = session.Question.Word
	h.send(msg)
	h.answer(cb, "", false)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		logger.Get().Warn("Failed to send Telegram message", zap.Error(err))
	}
}

func (h *Handler) answer(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	cfg := tgbotapi.NewCallback(cb.ID, text)
	cfg.ShowAlert = alert
	if _, err := h.bot.Request(cfg); err != nil {
		logger.Get().Warn("Failed to answer callback query", zap.Error(err))
	}
}

func (h *Handler) rememberChat(ctx context.Context, chatID int64, sessionID string) error {
	return h.chats.Set(ctx, chatKey(chatID), sessionID, h.chatTTL)
}

func chatKey(chatID int64) string {
	return cache.GenerateCacheKey("telegram", "chat", strconv.FormatInt(chatID, 10))
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
