package ui

// WrapMode controls what Next does on the last slide and Prev on the first.
type WrapMode int

const (
	WrapOff WrapMode = iota
	WrapAround
)

// Next cycles to the next wrap mode.
func (w WrapMode) Next() WrapMode {
	if w == WrapOff {
		return WrapAround
	}
	return WrapOff
}

func (w WrapMode) String() string {
	if w == WrapAround {
		return "around"
	}
	return "off"
}

// Icon returns a status indicator, empty when wrapping is off.
func (w WrapMode) Icon() string {
	if w == WrapAround {
		return "[wrap]"
	}
	return ""
}

// step returns the slide reached by moving delta from i in a deck of n,
// wrapping when enabled and clamping otherwise.
func (w WrapMode) step(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	j := i + delta
	if w == WrapAround {
		return ((j % n) + n) % n
	}
	return max(0, min(j, n-1))
}
