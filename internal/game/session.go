package game

import (
	"sync"
	"time"
)

// DefaultNoticeDuration is how long an elimination notice stays visible.
const DefaultNoticeDuration = 2 * time.Second

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Notice is the transient message shown after a wrong guess.
type Notice struct {
	Message    string
	Generation uint64
	ExpiresAt  time.Time
}

// Active reports whether the notice should still be shown at now.
func (n Notice) Active(now time.Time) bool {
	return n.Message != "" && now.Before(n.ExpiresAt)
}

// Session owns the live state of one player's game.
type Session struct {
	mu        sync.Mutex
	catalog   Catalog
	state     State
	notice    Notice
	gen       uint64
	timer     Timer
	sched     Scheduler
	now       func() time.Time
	noticeFor time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler replaces time.AfterFunc for notice expiry.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) { sess.sched = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(sess *Session) { sess.now = now }
}

// WithNoticeDuration sets how long elimination notices stay up.
func WithNoticeDuration(d time.Duration) Option {
	return func(sess *Session) {
		if d > 0 {
			sess.noticeFor = d
		}
	}
}

// NewSession starts a session from seed, or from a random question when
// seed is nil or names an unknown question.
func NewSession(c Catalog, seed *Seed, opts ...Option) (*Session, error) {
	st, err := Start(c, seed)
	if err != nil {
		return nil, err
	}
	s := &Session{
		catalog:   c,
		state:     st,
		sched:     realScheduler{},
		now:       time.Now,
		noticeFor: DefaultNoticeDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Notice returns the elimination notice if one is showing.
func (s *Session) Notice() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsOver() || !s.notice.Active(s.now()) {
		return Notice{}, false
	}
	return s.notice, true
}

// Guess applies a letter guess and reports whether the state changed.
func (s *Session) Guess(letter string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed, _ := Apply(s.state, Guess{Letter: letter}, s.catalog)
	if !changed {
		return false
	}
	s.state = next
	s.supersedeLocked()
	if !next.IsOver() && next.LastGuessWrong() {
		s.raiseLocked(EliminationMessage(next.NormalizedAnswer(), next.WrongCount()))
	}
	return true
}

// NewGame moves to a different question with nothing guessed.
func (s *Session) NewGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, _, err := Apply(s.state, NewGame{}, s.catalog)
	if err != nil {
		return err
	}
	s.state = next
	s.supersedeLocked()
	return nil
}

// Close cancels any pending notice timer.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
}

// supersedeLocked invalidates the current notice and its timer.
func (s *Session) supersedeLocked() {
	s.gen++
	s.notice = Notice{}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) raiseLocked(msg string) {
	gen := s.gen
	s.notice = Notice{Message: msg, Generation: gen, ExpiresAt: s.now().Add(s.noticeFor)}
	s.timer = s.sched.AfterFunc(s.noticeFor, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			return
		}
		s.notice = Notice{}
		s.timer = nil
	})
}
