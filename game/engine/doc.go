// Package engine provides the core rules and search for the ice-maze puzzle.
//
// The engine package implements:
//   - Tile lookup over an immutable board with a virtual exit gap
//   - Single-token movement resolution (walls, pits, ice sliding, teleporters)
//   - Joint search states for one or two tokens moved in lockstep
//   - Breadth-first frontier search with per-lineage visited pruning
//   - Parsing of the textual board grammar and puzzle configurations
//
// Core Types:
//
// Board answers TileAt over all of integer coordinate space. Resolve computes
// a single token's MoveOutcome. Turn is the joint search state, Solver walks
// frontiers of Turns, and Puzzle binds parsed boards to their start positions.
//
// Usage:
//
//	puzzle, err := engine.NewPuzzle(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	solution, err := puzzle.Solve(engine.SolveOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if solution.Found {
//		fmt.Println(solution.Moves)
//	}
//
// Rules:
//
// A token moves one cell per turn. Walls bounce it back, pits kill it, ice
// keeps it sliding in the same direction, a teleporter relocates it to the
// paired cell, and the single exit gap above the top row removes it from the
// board. A puzzle is solved when every token exits on the same move.
package engine
