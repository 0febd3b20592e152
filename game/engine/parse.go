package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Malformed-board errors. These are board-integrity precondition violations
// reported at parse time; they are never produced by the search itself.
var (
	ErrEmptyPuzzle    = errors.New("puzzle text is empty")
	ErrNoExit         = errors.New("exit row has no exit marker")
	ErrMultipleExits  = errors.New("exit row has more than one exit marker")
	ErrNoStart        = errors.New("puzzle has no start marker")
	ErrMultipleStarts = errors.New("puzzle has more than one start marker")
	ErrUnknownTile    = errors.New("unknown tile glyph")
	ErrTeleportCount  = errors.New("teleporter without a single partner")
	ErrRaggedRows     = errors.New("grid rows have unequal length")
)

// Board text glyphs. The first line of a puzzle is the exit row: walls with a
// single E marking the gap. Remaining lines are the grid, with one S marking
// the token's start (the tile under it is open floor).
const (
	glyphOpen     = '.'
	glyphWall     = '#'
	glyphPit      = 'O'
	glyphIce      = 'I'
	glyphTeleport = 'T'
	glyphExit     = 'E'
	glyphStart    = 'S'
)

func glyphFor(tile Tile) byte {
	switch tile {
	case Open:
		return glyphOpen
	case Wall:
		return glyphWall
	case Pit:
		return glyphPit
	case Ice:
		return glyphIce
	case Teleport:
		return glyphTeleport
	case Exit:
		return glyphExit
	}
	return '?'
}

// ParseBoard converts a textual grid description into a board and the token's
// starting position. The first line locates the exit column; subsequent lines
// map glyphs to tiles.
func ParseBoard(text string) (*Board, Position, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, Position{}, ErrEmptyPuzzle
	}

	exitCol, err := parseExitRow(lines[0])
	if err != nil {
		return nil, Position{}, err
	}

	gridLines := lines[1:]
	tiles := make([][]Tile, len(gridLines))
	start := Position{}
	startFound := false

	for y, line := range gridLines {
		row := make([]Tile, len(line))
		for x, ch := range []byte(line) {
			switch ch {
			case glyphOpen:
				row[x] = Open
			case glyphWall:
				row[x] = Wall
			case glyphPit:
				row[x] = Pit
			case glyphIce:
				row[x] = Ice
			case glyphTeleport:
				row[x] = Teleport
			case glyphStart:
				if startFound {
					return nil, Position{}, fmt.Errorf("%w: second start at (%d,%d)", ErrMultipleStarts, x, y)
				}
				startFound = true
				start = Position{X: x, Y: y}
				row[x] = Open
			default:
				return nil, Position{}, fmt.Errorf("%w: %q at row %d, col %d", ErrUnknownTile, ch, y+1, x)
			}
		}
		tiles[y] = row
	}

	if !startFound {
		return nil, Position{}, ErrNoStart
	}

	board, err := NewBoard(tiles, exitCol)
	if err != nil {
		return nil, Position{}, err
	}
	return board, start, nil
}

// parseExitRow finds the single exit marker in the first line of a puzzle.
func parseExitRow(line string) (int, error) {
	exitCol := -1
	for x, ch := range []byte(line) {
		switch ch {
		case glyphExit:
			if exitCol != -1 {
				return 0, fmt.Errorf("%w: markers at columns %d and %d", ErrMultipleExits, exitCol, x)
			}
			exitCol = x
		case glyphWall:
		default:
			return 0, fmt.Errorf("%w: %q in exit row at col %d", ErrUnknownTile, ch, x)
		}
	}
	if exitCol == -1 {
		return 0, ErrNoExit
	}
	return exitCol, nil
}

// splitLines normalizes line endings and trims trailing blank lines. Interior
// blank lines are preserved so they surface as ragged-row errors.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return lines
}
