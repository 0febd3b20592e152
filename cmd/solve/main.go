// Command solve is the command-line interface to the ice maze solver.
//
// It solves puzzles straight from board text files or puzzle JSON files,
// validates puzzle definitions, and prints quick heuristics about them:
//
//	solve solve board.txt [board2.txt]   # run the search on raw board text
//	solve validate puzzles/              # validate puzzle JSON files
//	solve analyze puzzles/classic.json   # print board stats and solvability
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/icefloe/icemaze/game/engine"
)

var log = logrus.StandardLogger()

func main() {
	cmd := &cli.Command{
		Name:  "solve",
		Usage: "Solve, validate, and analyze ice maze puzzles",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "Run the breadth-first search on one or two board text files",
				ArgsUsage: "BOARD_FILE [BOARD_FILE]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-generations",
						Aliases: []string{"g"},
						Usage:   "Stop the search after this many frontier generations (0 means unbounded)",
					},
					&cli.BoolFlag{
						Name:  "replay",
						Usage: "Print token positions after every move of the solution",
					},
				},
				Action: runSolve,
			},
			{
				Name:      "validate",
				Usage:     "Validate puzzle JSON files or a directory of them",
				ArgsUsage: "PATH [PATH...]",
				Action:    runValidate,
			},
			{
				Name:      "analyze",
				Usage:     "Print board statistics and solvability for puzzle JSON files",
				ArgsUsage: "PATH [PATH...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-generations",
						Aliases: []string{"g"},
						Usage:   "Generation cap for the solvability check (0 means unbounded)",
					},
				},
				Action: runAnalyze,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// runSolve reads raw board text files, runs the search, and prints the result.
func runSolve(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 || len(paths) > engine.MaxTokens {
		return fmt.Errorf("expected 1 to %d board files, got %d", engine.MaxTokens, len(paths))
	}

	boards := make([]*engine.Board, len(paths))
	starts := make([]engine.Position, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read board file: %w", err)
		}
		boards[i], starts[i], err = engine.ParseBoard(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.WithFields(logrus.Fields{
			"board": path,
			"rows":  boards[i].Rows(),
			"cols":  boards[i].Cols(),
			"start": starts[i],
		}).Debug("Parsed board")
	}

	turn, err := engine.NewTurn(boards, starts)
	if err != nil {
		return err
	}

	solver := engine.Solver{
		MaxGenerations: int(cmd.Int("max-generations")),
		Observer: func(generation, frontier int) {
			log.WithFields(logrus.Fields{
				"generation": generation,
				"frontier":   frontier,
			}).Debug("Expanding generation")
		},
	}

	solution, err := solver.Solve(turn)
	if err != nil {
		return err
	}

	printSolution(solution)

	if solution.Found && cmd.Bool("replay") {
		steps, status, err := engine.Replay(boards, starts, solution.Moves)
		if err != nil {
			return err
		}
		printReplay(steps, status)
	}

	return nil
}

// runValidate checks puzzle JSON files for structural problems: bad JSON,
// missing boards, unparseable board text, or wrong teleporter counts.
func runValidate(ctx context.Context, cmd *cli.Command) error {
	files, err := collectPuzzleFiles(cmd.Args().Slice())
	if err != nil {
		return err
	}

	invalid := 0
	for _, file := range files {
		errs := validatePuzzleFile(file)
		if len(errs) == 0 {
			fmt.Printf("✓ %s\n", file)
			continue
		}
		invalid++
		fmt.Printf("✗ %s\n", file)
		for _, e := range errs {
			fmt.Printf("    %s\n", e)
		}
	}

	fmt.Printf("\n%d of %d puzzle files valid\n", len(files)-invalid, len(files))
	if invalid > 0 {
		return fmt.Errorf("%d invalid puzzle files", invalid)
	}
	return nil
}

// runAnalyze prints tile statistics and a solvability report for each puzzle.
func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	files, err := collectPuzzleFiles(cmd.Args().Slice())
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzePuzzleFile(file, int(cmd.Int("max-generations"))); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
	return nil
}

// collectPuzzleFiles expands the argument list into a flat list of JSON files.
// Directories contribute every .json file they contain.
func collectPuzzleFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"puzzles"}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no puzzle files found")
	}
	return files, nil
}

// validatePuzzleFile loads one puzzle JSON file and returns all problems found.
func validatePuzzleFile(path string) []string {
	var errs []string

	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("failed to read file: %v", err)}
	}

	var config engine.PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return []string{fmt.Sprintf("invalid JSON: %v", err)}
	}

	if err := engine.ValidatePuzzleConfig(&config); err != nil {
		errs = append(errs, err.Error())
	}

	for i, lines := range config.Boards {
		if _, _, err := engine.ParseBoard(strings.Join(lines, "\n")); err != nil {
			errs = append(errs, fmt.Sprintf("board %d: %v", i+1, err))
		}
	}

	return errs
}

// analyzePuzzleFile prints stats for one puzzle and runs the solver on it.
func analyzePuzzleFile(path string, maxGenerations int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var config engine.PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return err
	}

	puzzle, err := engine.NewPuzzle(&config)
	if err != nil {
		return err
	}

	fmt.Printf("Name: %s\n", config.Name)
	if config.Description != "" {
		fmt.Printf("Description: %s\n", config.Description)
	}
	fmt.Printf("Tokens: %d\n", puzzle.Tokens())

	for i, board := range puzzle.Boards() {
		fmt.Printf("Board %d: %dx%d, exit at column %d\n",
			i+1, board.Rows(), board.Cols(), board.ExitColumn())
		fmt.Printf("  open=%d wall=%d pit=%d ice=%d teleport=%d\n",
			board.CountTiles(engine.Open),
			board.CountTiles(engine.Wall),
			board.CountTiles(engine.Pit),
			board.CountTiles(engine.Ice),
			board.CountTiles(engine.Teleport))
	}

	solution, err := puzzle.Solve(engine.SolveOptions{MaxGenerations: maxGenerations})
	if err != nil {
		return err
	}

	printSolution(solution)
	return nil
}

func printSolution(solution engine.Solution) {
	fmt.Printf("Searched %d generations, expanded %d states\n",
		solution.Generations, solution.Expanded)

	if !solution.Found {
		fmt.Println("No solution found")
		return
	}

	moves := make([]string, len(solution.Moves))
	for i, m := range solution.Moves {
		moves[i] = string(m)
	}
	fmt.Printf("Solved in %d moves: %s\n", len(moves), strings.Join(moves, ", "))
}

func printReplay(steps []engine.ReplayStep, status engine.Status) {
	fmt.Println("\nReplay:")
	for i, step := range steps {
		fmt.Printf("%3d. %-5s", i+1, step.Move)
		for j, pos := range step.Tokens {
			fmt.Printf("  token %d (%d,%d) %s", j+1, pos.X, pos.Y, step.Outcomes[j])
		}
		fmt.Println()
	}
	fmt.Printf("Final status: %s\n", status)
}
