package posture

// Leg identifies one of the quadruped's four legs.
type Leg int

const (
	FrontRight Leg = iota
	FrontLeft
	HindRight
	HindLeft
)

// Legs lists all four legs in motor-index order.
func Legs() [4]Leg {
	return [4]Leg{FrontRight, FrontLeft, HindRight, HindLeft}
}

// IsFront reports whether the leg attaches to the front of the body.
func (l Leg) IsFront() bool {
	return l == FrontRight || l == FrontLeft
}

// IsRight reports whether the leg attaches to the right side of the body.
func (l Leg) IsRight() bool {
	return l == FrontRight || l == HindRight
}

func (l Leg) String() string {
	switch l {
	case FrontRight:
		return "front-right"
	case FrontLeft:
		return "front-left"
	case HindRight:
		return "hind-right"
	case HindLeft:
		return "hind-left"
	}
	return "unknown"
}
