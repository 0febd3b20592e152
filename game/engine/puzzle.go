package engine

import (
	"fmt"
	"strings"
)

// PuzzleConfig is the JSON shape of a puzzle file: one or two boards given as
// lines of glyphs, exit row first.
type PuzzleConfig struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Boards      [][]string `json:"boards"`
}

// ValidatePuzzleConfig checks a puzzle configuration for correctness. It
// parses every board, so all malformed-board error kinds surface here.
func ValidatePuzzleConfig(config *PuzzleConfig) error {
	if config.Name == "" {
		return fmt.Errorf("puzzle validation: name is required")
	}
	if len(config.Boards) == 0 || len(config.Boards) > MaxTokens {
		return fmt.Errorf("puzzle validation: must have 1 to %d boards, got %d", MaxTokens, len(config.Boards))
	}
	for i, lines := range config.Boards {
		if _, _, err := ParseBoard(strings.Join(lines, "\n")); err != nil {
			return fmt.Errorf("puzzle validation: board %d: %w", i+1, err)
		}
	}
	return nil
}

// Puzzle binds parsed boards to their starting positions. It is immutable and
// shared read-only by every solve.
type Puzzle struct {
	name   string
	boards []*Board
	starts []Position
}

// NewPuzzle builds a puzzle from a validated configuration.
func NewPuzzle(config *PuzzleConfig) (*Puzzle, error) {
	if err := ValidatePuzzleConfig(config); err != nil {
		return nil, err
	}

	p := &Puzzle{
		name:   config.Name,
		boards: make([]*Board, len(config.Boards)),
		starts: make([]Position, len(config.Boards)),
	}
	for i, lines := range config.Boards {
		board, start, err := ParseBoard(strings.Join(lines, "\n"))
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i+1, err)
		}
		p.boards[i] = board
		p.starts[i] = start
	}
	return p, nil
}

// Name returns the puzzle's display name.
func (p *Puzzle) Name() string { return p.name }

// Tokens returns the number of tokens solved in lockstep.
func (p *Puzzle) Tokens() int { return len(p.boards) }

// Boards returns the parsed boards. They are shared and must not be mutated.
func (p *Puzzle) Boards() []*Board { return p.boards }

// Starts returns a copy of the initial token positions.
func (p *Puzzle) Starts() []Position {
	out := make([]Position, len(p.starts))
	copy(out, p.starts)
	return out
}

// Layouts renders every board back to its textual form with the start marker
// drawn in.
func (p *Puzzle) Layouts() [][]string {
	out := make([][]string, len(p.boards))
	for i, b := range p.boards {
		out[i] = b.Layout(p.starts[i])
	}
	return out
}

// SolveOptions configures one solve run.
type SolveOptions struct {
	// MaxGenerations caps the search depth; 0 means unbounded.
	MaxGenerations int

	// Observer receives per-generation progress.
	Observer Observer
}

// Solve searches for a move sequence driving every token to its exit
// simultaneously.
func (p *Puzzle) Solve(opts SolveOptions) (Solution, error) {
	initial, err := NewTurn(p.boards, p.starts)
	if err != nil {
		return Solution{}, err
	}
	solver := &Solver{
		MaxGenerations: opts.MaxGenerations,
		Observer:       opts.Observer,
	}
	return solver.Solve(initial)
}

// Replay applies a move sequence from the puzzle's start positions.
func (p *Puzzle) Replay(moves []Direction) ([]ReplayStep, Status, error) {
	return Replay(p.boards, p.starts, moves)
}
