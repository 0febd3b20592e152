package engine

import (
	"fmt"
	"runtime"
	"sync"
)

// Observer receives per-generation progress from the solver: the generation
// number and the size of the frontier about to be expanded. It replaces any
// process-wide tracing so the core stays silent and testable.
type Observer func(generation, frontier int)

// Solution is the result of a search. Found is false when the frontier was
// exhausted (or the generation cap was hit) without a success. That is a
// normal result, not an error.
type Solution struct {
	Found       bool        `json:"found"`
	Moves       []Direction `json:"moves,omitempty"`
	Generations int         `json:"generations"`
	Expanded    int         `json:"expanded"`
}

// Solver performs breadth-first frontier expansion over joint search states.
type Solver struct {
	// MaxGenerations caps the search depth; 0 means unbounded.
	MaxGenerations int

	// Observer, when set, is called once per generation before expansion.
	Observer Observer
}

// Solve runs the search from the initial state. Each generation is checked
// for a success before expansion, and the first success in the fixed
// direction-enumeration order wins, so the returned path is identical whether
// expansion runs sequentially or concurrently.
func (s *Solver) Solve(initial *Turn) (Solution, error) {
	if initial == nil {
		return Solution{}, fmt.Errorf("solve: initial turn is nil")
	}

	sol := Solution{}
	frontier := []*Turn{initial}

	for generation := 0; len(frontier) > 0; generation++ {
		sol.Generations = generation

		for _, t := range frontier {
			if t.Status() == Succeeded {
				sol.Found = true
				sol.Moves = t.History()
				return sol, nil
			}
		}

		if s.MaxGenerations > 0 && generation >= s.MaxGenerations {
			return sol, nil
		}
		if s.Observer != nil {
			s.Observer(generation, len(frontier))
		}

		children, err := expandGeneration(frontier)
		if err != nil {
			return Solution{}, err
		}
		sol.Expanded += len(children)

		// Failed children are dropped; the rest form the next frontier in
		// stable (turn, direction) order.
		next := frontier[:0]
		for _, child := range children {
			if child.Status() != Failed {
				next = append(next, child)
			}
		}
		frontier = next
	}

	return sol, nil
}

// expandGeneration expands every turn of the frontier against all four
// directions. Turns within a generation are independent and read-only with
// respect to their siblings, so expansion fans out across workers; children
// land in fixed slots indexed by (turn, direction) to keep the result order
// deterministic.
func expandGeneration(frontier []*Turn) ([]*Turn, error) {
	children := make([]*Turn, len(frontier)*len(Directions))
	errs := make([]error, len(frontier))

	workers := runtime.NumCPU()
	if workers > len(frontier) {
		workers = len(frontier)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(frontier); i += workers {
				for j, d := range Directions {
					child, err := frontier[i].Expand(d)
					if err != nil {
						errs[i] = err
						return
					}
					children[i*len(Directions)+j] = child
				}
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return children, nil
}

// SolvePuzzle parses one or two textual board descriptions and searches for a
// move sequence that drives every token to its exit on the same move. A
// malformed board is an error; an exhausted search is a Solution with Found
// set to false.
func SolvePuzzle(texts ...string) (Solution, error) {
	if len(texts) == 0 || len(texts) > MaxTokens {
		return Solution{}, fmt.Errorf("solve: expected 1 to %d boards, got %d", MaxTokens, len(texts))
	}

	boards := make([]*Board, len(texts))
	starts := make([]Position, len(texts))
	for i, text := range texts {
		board, start, err := ParseBoard(text)
		if err != nil {
			return Solution{}, fmt.Errorf("board %d: %w", i+1, err)
		}
		boards[i] = board
		starts[i] = start
	}

	initial, err := NewTurn(boards, starts)
	if err != nil {
		return Solution{}, err
	}

	solver := &Solver{}
	return solver.Solve(initial)
}
