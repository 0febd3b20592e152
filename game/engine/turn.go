package engine

import (
	"fmt"
	"maps"
)

// jointKey is the deduplication key for a joint state: the positions of all
// tracked tokens. Unused slots keep their zero value, which is consistent
// across every state of the same search.
type jointKey [MaxTokens]Position

// Turn is the unit of search: the current position of every tracked token,
// the move history that produced them, the joint positions already seen along
// this lineage, and an outcome tag.
type Turn struct {
	boards  []*Board
	tokens  []Position
	history []Direction
	visited map[jointKey]struct{}
	status  Status
}

// NewTurn creates the initial search state for one or two boards solved in
// lockstep. The visited set starts as a singleton holding the initial joint
// position and the history starts empty.
func NewTurn(boards []*Board, starts []Position) (*Turn, error) {
	if len(boards) == 0 || len(boards) > MaxTokens {
		return nil, fmt.Errorf("turn requires 1 to %d boards, got %d", MaxTokens, len(boards))
	}
	if len(starts) != len(boards) {
		return nil, fmt.Errorf("turn requires one start per board: %d boards, %d starts", len(boards), len(starts))
	}

	t := &Turn{
		boards:  boards,
		tokens:  make([]Position, len(starts)),
		visited: make(map[jointKey]struct{}, 1),
		status:  Ongoing,
	}
	copy(t.tokens, starts)
	t.visited[t.key()] = struct{}{}
	return t, nil
}

// Status returns the outcome tag of this state.
func (t *Turn) Status() Status { return t.status }

// History returns the moves that produced this state, oldest first. The
// returned slice must not be mutated.
func (t *Turn) History() []Direction { return t.history }

// Tokens returns a copy of the current token positions.
func (t *Turn) Tokens() []Position {
	out := make([]Position, len(t.tokens))
	copy(out, t.tokens)
	return out
}

func (t *Turn) key() jointKey {
	var k jointKey
	copy(k[:], t.tokens)
	return k
}

// Expand produces the child state reached by applying one direction to every
// tracked token. The child's history and visited set are copies: siblings
// never observe each other's additions.
//
// Outcome combination: all tokens exiting on this move succeeds; any death,
// or one token exiting while another does not, fails; otherwise the joint
// position is checked against the lineage's visited set and a repeat fails
// (cycle pruning). Game-logic outcomes are status values, never errors; the
// error return is reserved for board-integrity violations.
func (t *Turn) Expand(d Direction) (*Turn, error) {
	child := &Turn{
		boards:  t.boards,
		tokens:  make([]Position, len(t.tokens)),
		history: appendMove(t.history, d),
	}
	copy(child.tokens, t.tokens)

	exited := 0
	for i, b := range t.boards {
		outcome, err := Resolve(d, b, t.tokens[i])
		if err != nil {
			return nil, err
		}
		switch outcome.Kind {
		case Dead:
			child.status = Failed
			return child, nil
		case Exited:
			exited++
		case Arrived:
			child.tokens[i] = outcome.Pos
		}
	}

	switch exited {
	case len(t.boards):
		child.status = Succeeded
		return child, nil
	case 0:
	default:
		// One token out while the other is still on its board.
		child.status = Failed
		return child, nil
	}

	key := child.key()
	if _, seen := t.visited[key]; seen {
		child.status = Failed
		return child, nil
	}

	child.visited = maps.Clone(t.visited)
	child.visited[key] = struct{}{}
	child.status = Ongoing
	return child, nil
}

// appendMove copies the parent history and appends one move. Histories are
// copy-on-branch: the parent's backing array is never shared with a child's
// append slot.
func appendMove(history []Direction, d Direction) []Direction {
	out := make([]Direction, len(history)+1)
	copy(out, history)
	out[len(history)] = d
	return out
}
