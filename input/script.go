package input

// Script replays a fixed sequence of states, one per poll, then reports nothing held.
type Script struct {
	States []State
	polls  int
}

func (s *Script) Poll() State {
	if s.polls >= len(s.States) {
		s.polls++
		return 0
	}
	st := s.States[s.polls]
	s.polls++
	return st
}

// Hold returns n consecutive states with the given buttons held.
func Hold(n int, buttons ...Button) []State {
	st := Of(buttons...)
	out := make([]State, n)
	for i := range out {
		out[i] = st
	}
	return out
}
