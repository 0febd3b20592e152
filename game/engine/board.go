package engine

import "fmt"

// Board is an immutable grid of tiles plus the column of the exit gap.
//
// The grid stores Open/Wall/Pit/Ice/Teleport only. The exit is virtual: it
// lives one row above the top edge (y == -1) at exitCol, and every other
// coordinate outside the grid resolves to Wall, so the board behaves as if
// permanently walled except for one gap.
type Board struct {
	tiles     [][]Tile
	exitCol   int
	teleports []Position
}

// NewBoard builds a board from a rectangular tile grid and the exit column.
// The grid must be non-empty and rectangular, and must contain either zero or
// exactly two teleporter cells.
func NewBoard(tiles [][]Tile, exitCol int) (*Board, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyPuzzle
	}

	width := len(tiles[0])
	var teleports []Position
	for y, row := range tiles {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRaggedRows, y, len(row), width)
		}
		for x, tile := range row {
			switch tile {
			case Open, Wall, Pit, Ice:
			case Teleport:
				teleports = append(teleports, Position{X: x, Y: y})
			case Exit:
				return nil, fmt.Errorf("%w: exit tiles are virtual and cannot be stored at (%d,%d)", ErrUnknownTile, x, y)
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownTile, tile, x, y)
			}
		}
	}

	if n := len(teleports); n != 0 && n != TeleportPairSize {
		return nil, fmt.Errorf("%w: found %d, want 0 or %d", ErrTeleportCount, n, TeleportPairSize)
	}
	if exitCol < 0 || exitCol >= width {
		return nil, fmt.Errorf("%w: exit column %d outside grid width %d", ErrNoExit, exitCol, width)
	}

	return &Board{tiles: tiles, exitCol: exitCol, teleports: teleports}, nil
}

// Rows returns the number of grid rows.
func (b *Board) Rows() int { return len(b.tiles) }

// Cols returns the number of grid columns.
func (b *Board) Cols() int { return len(b.tiles[0]) }

// ExitColumn returns the column of the exit gap on the virtual row y == -1.
func (b *Board) ExitColumn() int { return b.exitCol }

// TileAt resolves the tile at p. The lookup is total over all of integer
// coordinate space: y == -1 is Exit at the exit column and Wall elsewhere,
// any other out-of-range coordinate is Wall.
func (b *Board) TileAt(p Position) Tile {
	if p.Y == -1 {
		if p.X == b.exitCol {
			return Exit
		}
		return Wall
	}
	if p.Y < -1 || p.Y >= b.Rows() || p.X < 0 || p.X >= b.Cols() {
		return Wall
	}
	return b.tiles[p.Y][p.X]
}

// TeleportPartner returns the position of the teleporter paired with the one
// at p. The second return is false when p is not a teleporter cell.
func (b *Board) TeleportPartner(p Position) (Position, bool) {
	for i, t := range b.teleports {
		if t == p {
			return b.teleports[(i+1)%len(b.teleports)], true
		}
	}
	return Position{}, false
}

// Teleports returns the teleporter positions, empty or a pair.
func (b *Board) Teleports() []Position {
	out := make([]Position, len(b.teleports))
	copy(out, b.teleports)
	return out
}

// Layout renders the board back to its textual form, exit row first. The
// token parameter, when inside the grid, is drawn with the start glyph.
func (b *Board) Layout(token Position) []string {
	lines := make([]string, 0, b.Rows()+1)

	exitRow := make([]byte, b.Cols())
	for x := range exitRow {
		if x == b.exitCol {
			exitRow[x] = glyphExit
		} else {
			exitRow[x] = glyphWall
		}
	}
	lines = append(lines, string(exitRow))

	for y, row := range b.tiles {
		line := make([]byte, len(row))
		for x, tile := range row {
			if token.X == x && token.Y == y {
				line[x] = glyphStart
				continue
			}
			line[x] = glyphFor(tile)
		}
		lines = append(lines, string(line))
	}
	return lines
}

// CountTiles returns the number of grid cells holding the given tile.
func (b *Board) CountTiles(tile Tile) int {
	count := 0
	for _, row := range b.tiles {
		for _, t := range row {
			if t == tile {
				count++
			}
		}
	}
	return count
}
