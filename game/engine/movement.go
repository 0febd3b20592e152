package engine

import (
	"errors"
	"fmt"
)

// ErrUnstableBoard reports an ice slide that failed to terminate within the
// board's cell count. On a well-formed board every slide crosses a cell at
// most once, so exceeding the bound means a degenerate ice/teleport layout.
var ErrUnstableBoard = errors.New("ice slide did not terminate")

// Resolve computes the outcome of moving one token a single step in the given
// direction. It is pure with respect to board state.
//
// A wall bounces the token back to its current position (the move still
// consumes a history entry). Ice keeps the token sliding in the same
// direction until it reaches a non-ice tile: the slide is an explicit loop
// bounded by the grid's cell count rather than structural recursion. Stepping
// onto a teleporter relocates the token to the partner cell in the same move.
func Resolve(d Direction, b *Board, from Position) (MoveOutcome, error) {
	dx, dy := d.Delta()
	pos := from

	for steps := 0; steps <= b.Rows()*b.Cols(); steps++ {
		to := Position{X: pos.X + dx, Y: pos.Y + dy}

		switch tile := b.TileAt(to); tile {
		case Open:
			return MoveOutcome{Kind: Arrived, Pos: to}, nil
		case Wall:
			return MoveOutcome{Kind: Arrived, Pos: pos}, nil
		case Pit:
			return MoveOutcome{Kind: Dead}, nil
		case Exit:
			return MoveOutcome{Kind: Exited}, nil
		case Teleport:
			partner, ok := b.TeleportPartner(to)
			if !ok {
				return MoveOutcome{}, fmt.Errorf("%w: no partner for teleporter at (%d,%d)", ErrTeleportCount, to.X, to.Y)
			}
			return MoveOutcome{Kind: Arrived, Pos: partner}, nil
		case Ice:
			pos = to
		default:
			return MoveOutcome{}, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownTile, tile, to.X, to.Y)
		}
	}

	return MoveOutcome{}, fmt.Errorf("%w: sliding %s from (%d,%d)", ErrUnstableBoard, d, from.X, from.Y)
}
