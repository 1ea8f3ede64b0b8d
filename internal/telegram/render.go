package telegram

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgTitle          = "<b>Daily English Vocabulary Quiz</b>"
	msgSelectFirst    = "Select an answer first"
	msgNoAudio        = "No pronunciation available"
	msgSessionExpired = "This quiz has expired. Send /quiz to start a new one."
	msgHelp           = "Send /quiz to start a five word vocabulary quiz. Pick the meaning of each word, then press Next."
	msgInternalError  = "Something went wrong. Please try again."
)

// Callback data. Answers carry the option index: "ans:2".
const (
	cbAnswer  = "ans"
	cbNext    = "next"
	cbSay     = "say"
	cbRestart = "restart"
)

func buildAnswerCallback(i int) string {
	return cbAnswer + ":" + strconv.Itoa(i)
}

// parseCallback splits "action[:arg]".
func parseCallback(data string) (action string, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

// renderSession returns the message text and keyboard for s. The keyboard is
// nil when the session offers no controls.
func renderSession(s *dto.SessionResponse) (string, *tgbotapi.InlineKeyboardMarkup) {
	var b strings.Builder
	b.WriteString(msgTitle)
	b.WriteString("\n\n")

	switch s.State {
	case string(domain.StateLoading), string(domain.StateLoadFailed):
		b.WriteString(html.EscapeString(s.Message))
		return b.String(), nil

	case string(domain.StateSubmitted):
		score := 0
		if s.Score != nil {
			score = *s.Score
		}
		fmt.Fprintf(&b, "Your Score: %d/%d", score, s.Total)
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Try Again", cbRestart)),
		)
		return b.String(), &kb
	}

	if s.Question == nil {
		return b.String(), nil
	}

	fmt.Fprintf(&b, "Question %d of %d\n\n<b>%s</b>", s.Progress.Current, s.Progress.Total, html.EscapeString(s.Question.Word))

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(s.Question.Options)+1)
	for i, opt := range s.Question.Options {
		label := opt
		if s.Selected != nil && *s.Selected == i {
			label = "✅ " + opt
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(i)),
		))
	}

	next := "Next Question"
	if s.IsLast {
		next = "Submit Quiz"
	}
	if !s.CanAdvance {
		// Telegram has no disabled buttons; the callback answers with an alert.
		next = "· " + next + " ·"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔊", cbSay),
		tgbotapi.NewInlineKeyboardButtonData(next, cbNext),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return b.String(), &kb
}
