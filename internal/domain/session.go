package domain

import (
	"context"
	"time"
)

// SessionState is a node of the quiz lifecycle:
//
//	loading -> active | load_failed
//	active -> submitted
//	submitted -> active (restart)
type SessionState string

const (
	StateLoading    SessionState = "loading"
	StateActive     SessionState = "active"
	StateLoadFailed SessionState = "load_failed"
	StateSubmitted  SessionState = "submitted"
)

// Session is one run through a sampled set of questions. Transition methods
// check their preconditions before touching any field, so a rejected
// transition leaves the session unchanged.
type Session struct {
	ID           string       `json:"id"`
	State        SessionState `json:"state"`
	Questions    []Question   `json:"questions"`
	CurrentIndex int          `json:"current_index"`
	Answers      map[int]int  `json:"answers"`
	Score        *int         `json:"score,omitempty"`
	LoadError    string       `json:"load_error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewSession returns a session in the loading state.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateLoading,
		Answers:   map[int]int{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load finishes the loading state. Any sampling error or an empty question
// set moves the session to load_failed, which has no way out.
func (s *Session) Load(questions []Question, err error, now time.Time) error {
	if s.State != StateLoading {
		return ErrInvalidTransition.WithContext("state", s.State)
	}
	if err == nil && len(questions) == 0 {
		err = ErrEmptyQuestionBank
	}
	s.UpdatedAt = now
	if err != nil {
		s.State = StateLoadFailed
		s.Questions = nil
		s.LoadError = err.Error()
		return nil
	}
	s.State = StateActive
	s.Questions = questions
	s.CurrentIndex = 0
	s.Answers = map[int]int{}
	s.Score = nil
	return nil
}

// CurrentQuestion returns the question at CurrentIndex, or false outside the
// active state.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.State != StateActive || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// SelectAnswer records optionIndex for the current question, replacing any
// earlier choice.
func (s *Session) SelectAnswer(optionIndex int, now time.Time) error {
	q, ok := s.CurrentQuestion()
	if !ok {
		return ErrInvalidTransition.WithContext("state", s.State)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrOptionOutOfRange.
			WithContext("option_index", optionIndex).
			WithContext("options", len(q.Options))
	}
	if s.Answers == nil {
		s.Answers = map[int]int{}
	}
	s.Answers[s.CurrentIndex] = optionIndex
	s.UpdatedAt = now
	return nil
}

// Selected returns the recorded answer for the current question.
func (s *Session) Selected() (int, bool) {
	v, ok := s.Answers[s.CurrentIndex]
	return v, ok
}

// CanAdvance reports whether Advance would succeed.
func (s *Session) CanAdvance() bool {
	if s.State != StateActive {
		return false
	}
	_, answered := s.Selected()
	return answered
}

// IsLastQuestion reports whether the current question is the final one.
func (s *Session) IsLastQuestion() bool {
	return s.CurrentIndex >= len(s.Questions)-1
}

// Advance moves to the next question, or submits and scores the session on
// the final question. It refuses while the current question is unanswered.
func (s *Session) Advance(now time.Time) error {
	if s.State != StateActive {
		return ErrInvalidTransition.WithContext("state", s.State)
	}
	if _, answered := s.Selected(); !answered {
		return ErrAnswerRequired.WithContext("question_index", s.CurrentIndex)
	}
	s.UpdatedAt = now
	if s.IsLastQuestion() {
		score := CountCorrect(s.Questions, s.Answers)
		s.Score = &score
		s.State = StateSubmitted
		return nil
	}
	s.CurrentIndex++
	return nil
}

// Restart replaces the finished run with a freshly sampled one. Nothing from
// the previous run is carried over.
func (s *Session) Restart(questions []Question, err error, now time.Time) error {
	if s.State != StateSubmitted {
		return ErrInvalidTransition.WithContext("state", s.State)
	}
	s.State = StateLoading
	s.Questions = nil
	s.CurrentIndex = 0
	s.Answers = map[int]int{}
	s.Score = nil
	s.LoadError = ""
	return s.Load(questions, err, now)
}

// CountCorrect counts answers that match the correct index. Unanswered
// questions count as incorrect.
func CountCorrect(questions []Question, answers map[int]int) int {
	correct := 0
	for i, q := range questions {
		if a, ok := answers[i]; ok && q.IsCorrect(a) {
			correct++
		}
	}
	return correct
}

// SessionRepository stores sessions between requests.
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
