package engine

import "fmt"

// ReplayStep records the joint result of applying one move during a replay.
// Tokens holds each token's resting position after the move; a token that
// exited or died keeps its last on-board position.
type ReplayStep struct {
	Move     Direction     `json:"move"`
	Tokens   []Position    `json:"tokens"`
	Outcomes []OutcomeKind `json:"outcomes"`
}

// Replay runs a move sequence through the movement resolver from the given
// start positions, without visited-set pruning, and reports the per-step
// positions plus the final status. The replay stops at the first terminal
// move (death, asymmetric exit, or joint success).
func Replay(boards []*Board, starts []Position, moves []Direction) ([]ReplayStep, Status, error) {
	if len(boards) == 0 || len(boards) > MaxTokens || len(starts) != len(boards) {
		return nil, Failed, fmt.Errorf("replay requires 1 to %d boards with matching starts", MaxTokens)
	}

	tokens := make([]Position, len(starts))
	copy(tokens, starts)

	steps := make([]ReplayStep, 0, len(moves))
	for _, d := range moves {
		if !d.Valid() {
			return steps, Failed, fmt.Errorf("replay: invalid direction %q", d)
		}

		step := ReplayStep{
			Move:     d,
			Tokens:   make([]Position, len(tokens)),
			Outcomes: make([]OutcomeKind, len(tokens)),
		}
		copy(step.Tokens, tokens)

		exited, dead := 0, 0
		for i, b := range boards {
			outcome, err := Resolve(d, b, tokens[i])
			if err != nil {
				return steps, Failed, err
			}
			step.Outcomes[i] = outcome.Kind
			switch outcome.Kind {
			case Arrived:
				step.Tokens[i] = outcome.Pos
			case Exited:
				exited++
			case Dead:
				dead++
			}
		}

		copy(tokens, step.Tokens)
		steps = append(steps, step)

		if dead > 0 {
			return steps, Failed, nil
		}
		if exited == len(boards) {
			return steps, Succeeded, nil
		}
		if exited > 0 {
			return steps, Failed, nil
		}
	}

	return steps, Ongoing, nil
}
