package game

const (
	BoardSize = 15
	WinLength = 5
)

// Cell is the wire value of a board square.
type Cell int

const (
	CellEmpty Cell = 0
	CellOdd   Cell = 1
	CellEven  Cell = 2
)

// StoneFor returns the stone written by whoever moves at the given parity
// (round + turn origin).
func StoneFor(parity int) Cell {
	if parity%2 == 1 {
		return CellOdd
	}
	return CellEven
}

type Verdict int

const (
	Continue Verdict = iota
	Win
	Tie
)

func (v Verdict) String() string {
	switch v {
	case Win:
		return "win"
	case Tie:
		return "tie"
	default:
		return "continue"
	}
}

// Board is indexed as Board[x][y].
type Board [BoardSize][BoardSize]Cell

var axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func (b *Board) At(x, y int) Cell {
	return b[x][y]
}

func (b *Board) Place(x, y int, c Cell) {
	b[x][y] = c
}

func (b *Board) Full() bool {
	for x := range b {
		for y := range b[x] {
			if b[x][y] == CellEmpty {
				return false
			}
		}
	}
	return true
}

// CheckOutcome evaluates the board after a stone was placed at (x, y).
func (b *Board) CheckOutcome(x, y int) Verdict {
	stone := b[x][y]
	if stone == CellEmpty {
		return Continue
	}
	for _, d := range axes {
		n := 1 + b.run(x, y, d[0], d[1], stone) + b.run(x, y, -d[0], -d[1], stone)
		if n >= WinLength {
			return Win
		}
	}
	if b.Full() {
		return Tie
	}
	return Continue
}

// run counts consecutive stones of the given value starting next to (x, y).
func (b *Board) run(x, y, dx, dy int, stone Cell) int {
	n := 0
	for {
		x, y = x+dx, y+dy
		if !b.InBounds(x, y) || b[x][y] != stone {
			return n
		}
		n++
	}
}
