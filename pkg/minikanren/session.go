package minikanren

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session allocates logic variables and starts searches.
//
// Variable identities are unique within a session and are never reused, so
// variables created by the caller before Solve and variables introduced by
// Fresh during the search cannot collide. A Session is not safe for
// concurrent use; independent searches that run in parallel should each
// use their own Session.
type Session struct {
	id       uuid.UUID
	nextID   int64
	log      logrus.FieldLogger
	metrics  *Metrics
	maxSteps int64
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for search diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics records search counters into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithMaxSteps bounds every search started by the session to n steps.
// A search that reaches the bound stops with ErrStepLimit. Zero or a
// negative n means unbounded.
func WithMaxSteps(n int64) Option {
	return func(s *Session) {
		s.maxSteps = n
	}
}

// WithDefaultMaxSteps bounds searches to n steps unless an earlier option
// already set a positive bound.
func WithDefaultMaxSteps(n int64) Option {
	return func(s *Session) {
		if s.maxSteps <= 0 {
			s.maxSteps = n
		}
	}
}

// NewSession creates a session with its own variable allocator.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:  uuid.New(),
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session", s.id.String())
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Var creates a new logic variable. The name is used for diagnostics only.
func (s *Session) Var(name string) *Var {
	s.nextID++
	return &Var{id: s.nextID, name: name}
}

// Solve evaluates goal against the empty substitution and returns a cursor
// over its solutions. No work is done until the cursor is advanced.
func (s *Session) Solve(goal Goal) *Solutions {
	s.log.Debug("Search started")
	st := State{sub: NewSubstitution(), session: s}
	return &Solutions{
		session: s,
		rest: &pauseStream{force: func() Stream {
			return goal(st)
		}},
	}
}

// State is the input of a goal: the substitution built so far and the
// session that owns the search.
type State struct {
	sub     *Substitution
	session *Session
}

// Substitution returns the bindings accumulated on this branch.
func (st State) Substitution() *Substitution {
	return st.sub
}

// Session returns the session that owns the search.
func (st State) Session() *Session {
	return st.session
}
