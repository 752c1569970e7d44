package minikanren

// Stream represents a lazy, possibly infinite sequence of substitutions.
// Streams are the core data structure for representing multiple solutions
// in miniKanren. A Stream is an inert description of the remaining search;
// nothing is computed until a Solutions cursor steps it.
//
// The concrete forms are unexported: the empty stream, a single result,
// a suspension, the fair interleaving of two streams, and a stream whose
// results are fed to a goal.
type Stream interface {
	isStream()
}

type emptyStream struct{}

// unitStream holds exactly one substitution.
type unitStream struct {
	sub *Substitution
}

// pauseStream computes the rest of the search only when forced.
type pauseStream struct {
	force func() Stream
}

// mplusStream interleaves left and right. After every step taken on the
// left side the operands swap places.
type mplusStream struct {
	left, right Stream
}

// bindStream applies goal to each substitution of src.
type bindStream struct {
	src     Stream
	goal    Goal
	session *Session
}

func (emptyStream) isStream()  {}
func (*unitStream) isStream()  {}
func (*pauseStream) isStream() {}
func (*mplusStream) isStream() {}
func (*bindStream) isStream()  {}

func isEmpty(s Stream) bool {
	if s == nil {
		return true
	}
	_, ok := s.(emptyStream)
	return ok
}

func mplus(a, b Stream) Stream {
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}
	return &mplusStream{left: a, right: b}
}

func bind(s Stream, goal Goal, session *Session) Stream {
	if isEmpty(s) {
		return emptyStream{}
	}
	return &bindStream{src: s, goal: goal, session: session}
}

// step advances s by one unit of work. It returns a substitution when one is
// produced, together with the stream of remaining work. A nil substitution
// with a non-empty rest means the search paused; a nil substitution with an
// empty rest means s is exhausted.
//
// The left spine of nested interleavings and binds is walked with a slice of
// frames, so the depth of the search never turns into Go stack depth.
func step(s Stream, m *Metrics) (*Substitution, Stream) {
	var frames []Stream
	cur := s
descend:
	for {
		switch c := cur.(type) {
		case *mplusStream:
			frames = append(frames, c)
			cur = c.left
		case *bindStream:
			frames = append(frames, c)
			cur = c.src
		default:
			break descend
		}
	}

	var sub *Substitution
	var rest Stream = emptyStream{}
	switch c := cur.(type) {
	case *unitStream:
		sub = c.sub
	case *pauseStream:
		m.suspensionForced()
		rest = c.force()
	}

	for i := len(frames) - 1; i >= 0; i-- {
		switch f := frames[i].(type) {
		case *mplusStream:
			// The right operand goes first next time, whether the left
			// side produced, paused or ran dry.
			rest = mplus(f.right, rest)
		case *bindStream:
			if sub != nil {
				rest = mplus(f.goal(State{sub: sub, session: f.session}), bind(rest, f.goal, f.session))
				sub = nil
			} else {
				rest = bind(rest, f.goal, f.session)
			}
		}
	}
	return sub, rest
}
