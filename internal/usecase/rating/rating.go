package rating

import "math"

const DefaultK = 32

// base is c in E = c^Ri / (c^Ri + c^Rj).
var base = math.Pow(10, 1.0/400)

// Side indexes the two participants in join order.
type Side int

const (
	SideOne Side = 0
	SideTwo Side = 1
)

func (s Side) Other() Side {
	return 1 - s
}

type Adjustment struct {
	Old [2]float64
	New [2]float64
	// Delta is |old - new| for side one.
	Delta float64
	// Gainer is the side whose rating went up.
	Gainer Side
}

type Engine struct {
	k float64
}

func NewEngine(k float64) *Engine {
	if k <= 0 {
		k = DefaultK
	}
	return &Engine{k: k}
}

func (e *Engine) Expected(r1, r2 float64) (float64, float64) {
	q1, q2 := math.Pow(base, r1), math.Pow(base, r2)
	return q1 / (q1 + q2), q2 / (q1 + q2)
}

// Win rates a decisive result. New ratings are rounded half up.
func (e *Engine) Win(old1, old2 float64, winner Side) Adjustment {
	s1, s2 := 0.0, 1.0
	if winner == SideOne {
		s1, s2 = 1, 0
	}
	e1, e2 := e.Expected(old1, old2)
	adj := Adjustment{
		Old:    [2]float64{old1, old2},
		New:    [2]float64{roundHalfUp(old1 + e.k*(s1-e1)), roundHalfUp(old2 + e.k*(s2-e2))},
		Gainer: winner,
	}
	adj.Delta = math.Abs(old1 - adj.New[0])
	return adj
}

// Tie rates a drawn game. These ratings keep their fractional part.
func (e *Engine) Tie(old1, old2 float64) Adjustment {
	e1, e2 := e.Expected(old1, old2)
	adj := Adjustment{
		Old: [2]float64{old1, old2},
		New: [2]float64{old1 + e.k*(0.5-e1), old2 + e.k*(0.5-e2)},
	}
	adj.Gainer = SideTwo
	if adj.New[0] > old1 {
		adj.Gainer = SideOne
	}
	adj.Delta = math.Abs(old1 - adj.New[0])
	return adj
}

// Forfeit scores the leaver as the loser.
func (e *Engine) Forfeit(old1, old2 float64, leaver Side) Adjustment {
	return e.Win(old1, old2, leaver.Other())
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
