package engine

// Tile represents one kind of grid cell.
type Tile string

const (
	Open     Tile = "open"
	Wall     Tile = "wall"
	Pit      Tile = "pit"
	Ice      Tile = "ice"
	Teleport Tile = "teleport"
	Exit     Tile = "exit"
)

const (
	// MaxTokens is the number of boards that can be solved in lockstep.
	MaxTokens = 2

	// TeleportPairSize is the required number of teleporter cells on a board
	// that has any teleporter at all.
	TeleportPairSize = 2
)

// Position represents x,y coordinates. y grows downward; the exit sits on the
// virtual row y == -1.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four cardinal moves.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions is the fixed enumeration order. Every tie in the search is
// broken by this order, so it must never change.
var Directions = [4]Direction{Up, Down, Right, Left}

// Delta returns the unit vector for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// OutcomeKind tags the result of one simulated step for a single token.
type OutcomeKind string

const (
	// Arrived means the token came to rest on a grid cell. The resting
	// position may equal the starting position when a wall blocked the move.
	Arrived OutcomeKind = "arrived"

	// Dead means the token fell into a pit.
	Dead OutcomeKind = "dead"

	// Exited means the token left the board through the exit gap.
	Exited OutcomeKind = "exited"
)

// MoveOutcome is the result of resolving one move for a single token.
// Pos is meaningful only when Kind is Arrived.
type MoveOutcome struct {
	Kind OutcomeKind `json:"kind"`
	Pos  Position    `json:"pos"`
}

// Status classifies a joint search state.
type Status string

const (
	Ongoing   Status = "ongoing"
	Failed    Status = "failed"
	Succeeded Status = "succeeded"
)
