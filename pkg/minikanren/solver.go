package minikanren

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrStepLimit is returned when a search reaches the step bound configured
// with WithMaxSteps.
var ErrStepLimit = errors.New("search step limit reached")

// contextCheckInterval is how many steps run between context checks.
const contextCheckInterval = 64

// Solutions is a cursor over the stream of a goal. Each call to Next drives
// the search only as far as the next solution.
type Solutions struct {
	session   *Session
	rest      Stream
	steps     int64
	found     int64
	exhausted bool
}

// Next returns the next solution. The boolean is false once the search is
// exhausted. An error is returned when ctx is done or the step bound is hit;
// the cursor can be resumed with a fresh context after a context error.
func (s *Solutions) Next(ctx context.Context) (*Substitution, bool, error) {
	m := s.session.metrics
	for !s.exhausted {
		if s.steps%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, false, fmt.Errorf("search interrupted after %d steps: %w", s.steps, err)
			}
		}
		if s.session.maxSteps > 0 && s.steps >= s.session.maxSteps {
			s.session.log.WithFields(logrus.Fields{
				"steps":     s.steps,
				"solutions": s.found,
			}).Warn("Search step limit reached")
			return nil, false, fmt.Errorf("%w (%d)", ErrStepLimit, s.session.maxSteps)
		}

		sub, rest := step(s.rest, m)
		s.steps++
		m.stepTaken()
		s.rest = rest
		if isEmpty(rest) {
			s.exhausted = true
			s.session.log.WithFields(logrus.Fields{
				"steps":     s.steps,
				"solutions": s.found + boolToInt64(sub != nil),
			}).Debug("Search exhausted")
		}
		if sub != nil {
			s.found++
			m.solutionFound()
			return sub, true, nil
		}
	}
	return nil, false, nil
}

// Take retrieves up to n solutions; a negative n retrieves all of them.
// Returns the solutions and a boolean indicating if more might be available.
// Use a negative n only on searches known to be finite.
func (s *Solutions) Take(ctx context.Context, n int) ([]*Substitution, bool, error) {
	var results []*Substitution
	for n < 0 || len(results) < n {
		sub, ok, err := s.Next(ctx)
		if err != nil {
			return results, !s.exhausted, err
		}
		if !ok {
			break
		}
		results = append(results, sub)
	}
	return results, !s.exhausted, nil
}

// Steps returns the number of steps taken so far.
func (s *Solutions) Steps() int64 {
	return s.steps
}

// Exhausted reports whether the search has no more solutions.
func (s *Solutions) Exhausted() bool {
	return s.exhausted
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Distinct reifies term in each solution and returns the distinct answers in
// the order they were first found. A limit of zero or less collects every
// distinct answer, which requires the search to be finite.
func Distinct(ctx context.Context, sols *Solutions, term Term, limit int) ([]Term, error) {
	answers := NewAnswerSet()
	for limit <= 0 || answers.Len() < limit {
		sub, ok, err := sols.Next(ctx)
		if err != nil {
			return answers.Items(), err
		}
		if !ok {
			break
		}
		answers.Add(Reify(term, sub))
	}
	return answers.Items(), nil
}

// Run executes a goal and returns up to n solutions.
// This is the main entry point for executing miniKanren programs.
// It takes a goal that introduces one fresh variable and returns the
// values that variable can take, reified, in the order found. Duplicate
// answers are kept.
//
// Example:
//
//	solutions := Run(5, func(q *Var) Goal {
//	    return Eq(q, NewAtom("hello"))
//	})
//	// Returns: [hello]
func Run(n int, goalFunc func(*Var) Goal, opts ...Option) []Term {
	results, _ := RunContext(context.Background(), n, goalFunc, opts...)
	return results
}

// RunStar executes a goal and returns all solutions.
// WARNING: This runs forever if the goal has infinite solutions.
// Use RunContext with a timeout or WithMaxSteps for safer execution.
func RunStar(goalFunc func(*Var) Goal, opts ...Option) []Term {
	return Run(-1, goalFunc, opts...)
}

// RunContext executes a goal with a context for cancellation and timeouts.
// A negative n collects every solution. On error the solutions found so far
// are returned with it.
func RunContext(ctx context.Context, n int, goalFunc func(*Var) Goal, opts ...Option) ([]Term, error) {
	session := NewSession(opts...)
	q := session.Var("q")
	sols := session.Solve(goalFunc(q))

	var results []Term
	for n < 0 || len(results) < n {
		sub, ok, err := sols.Next(ctx)
		if err != nil {
			return results, err
		}
		if !ok {
			break
		}
		results = append(results, Reify(q, sub))
	}
	return results, nil
}
