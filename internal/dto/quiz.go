package dto

import "vocab-quiz/internal/domain"

// User facing messages shared by every front end.
const (
	MessageLoading    = "Loading quiz..."
	MessageLoadFailed = "Failed to load quiz. Please try again later."
)

// QuestionView is a question without its answer key.
// @Description Current question
type QuestionView struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
}

// ProgressView backs the "Question N of M" indicator. Current is 1-based.
type ProgressView struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SessionResponse is the rendered view of a quiz session.
// @Description Quiz session state
type SessionResponse struct {
	ID         string        `json:"id"`
	State      string        `json:"state"`
	Question   *QuestionView `json:"question,omitempty"`
	Progress   ProgressView  `json:"progress"`
	Selected   *int          `json:"selected,omitempty"`
	CanAdvance bool          `json:"can_advance"`
	IsLast     bool          `json:"is_last"`
	Score      *int          `json:"score,omitempty"`
	Total      int           `json:"total"`
	Message    string        `json:"message,omitempty"`
}

// NewSessionResponse renders s. The correct indexes never leave the server.
func NewSessionResponse(s *domain.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:    s.ID,
		State: string(s.State),
		Total: len(s.Questions),
	}

	switch s.State {
	case domain.StateLoading:
		resp.Message = MessageLoading
	case domain.StateLoadFailed:
		resp.Message = MessageLoadFailed
	case domain.StateActive:
		if q, ok := s.CurrentQuestion(); ok {
			resp.Question = &QuestionView{
				Word:    q.Word,
				Options: append([]string(nil), q.Options...),
			}
		}
		resp.Progress = ProgressView{Current: s.CurrentIndex + 1, Total: len(s.Questions)}
		if sel, ok := s.Selected(); ok {
			resp.Selected = &sel
		}
		resp.CanAdvance = s.CanAdvance()
		resp.IsLast = s.IsLastQuestion()
	case domain.StateSubmitted:
		resp.Progress = ProgressView{Current: len(s.Questions), Total: len(s.Questions)}
		if s.Score != nil {
			score := *s.Score
			resp.Score = &score
		}
	}
	return resp
}

// AnswerRequest selects an option of the current question.
// @Description Request body for selecting an answer
type AnswerRequest struct {
	OptionIndex *int `json:"option_index"`
}

// PronunciationResponse is the result of an audio lookup. Available is false
// when no recording could be found; that is not an error.
// @Description Pronunciation audio lookup result
type PronunciationResponse struct {
	Word      string `json:"word"`
	AudioURL  string `json:"audio_url,omitempty"`
	Available bool   `json:"available"`
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status    string `json:"status"`
	Questions int    `json:"questions"`
	Cache     string `json:"cache"`
}
