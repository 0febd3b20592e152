package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/icefloe/icemaze/game/engine"
	"github.com/icefloe/icemaze/game/service"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// Manager handles puzzle loading and caching
type Manager struct {
	puzzleDir     string
	defaultPuzzle *engine.PuzzleConfig
	puzzles       map[string]*engine.PuzzleConfig
	mu            sync.RWMutex
}

// NewManager creates a new puzzle manager
func NewManager(puzzleDir string) (*Manager, error) {
	if _, err := os.Stat(puzzleDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle directory does not exist: %s", puzzleDir)
	}

	m := &Manager{
		puzzleDir: puzzleDir,
		puzzles:   make(map[string]*engine.PuzzleConfig),
	}

	if err := m.loadDefaultPuzzle(); err != nil {
		return nil, fmt.Errorf("failed to load default puzzle: %w", err)
	}

	return m, nil
}

// LoadPuzzle loads a puzzle configuration by name
func (m *Manager) LoadPuzzle(name string) (*engine.PuzzleConfig, error) {
	m.mu.RLock()
	if puzzle, exists := m.puzzles[name]; exists {
		m.mu.RUnlock()
		return puzzle, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if puzzle, exists := m.puzzles[name]; exists {
		return puzzle, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	puzzlePath := filepath.Join(m.puzzleDir, filename)

	data, err := os.ReadFile(puzzlePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	var puzzle engine.PuzzleConfig
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle: %w", err)
	}

	if err := engine.ValidatePuzzleConfig(&puzzle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	m.puzzles[name] = &puzzle
	return &puzzle, nil
}

// ListPuzzles returns information about all available puzzles
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var puzzles []*service.PuzzleInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		puzzle, err := m.LoadPuzzle(name)
		if err != nil {
			// Skip invalid puzzles
			continue
		}

		puzzles = append(puzzles, puzzleInfo(entry.Name(), name, puzzle))
	}

	return puzzles, nil
}

// GetDefault returns the default puzzle configuration
func (m *Manager) GetDefault() *engine.PuzzleConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPuzzle
}

// SetDefault sets the default puzzle by name
func (m *Manager) SetDefault(name string) error {
	puzzle, err := m.LoadPuzzle(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPuzzle = puzzle
	return nil
}

// RefreshCache reloads all cached puzzles from disk. The cache is cleared
// under the lock, but the default puzzle is re-resolved unlocked: LoadPuzzle
// takes the lock itself.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.puzzles = make(map[string]*engine.PuzzleConfig)
	m.mu.Unlock()

	return m.loadDefaultPuzzle()
}

// loadDefaultPuzzle loads the default puzzle. It prefers classic.json, then
// the first available puzzle, then a built-in minimal one. Callers must not
// hold the lock.
func (m *Manager) loadDefaultPuzzle() error {
	puzzle, err := m.LoadPuzzle("classic")
	if err != nil {
		puzzles, listErr := m.ListPuzzles()
		if listErr != nil || len(puzzles) == 0 {
			m.setDefaultPuzzle(m.createMinimalPuzzle())
			return nil
		}

		puzzle, err = m.LoadPuzzle(strings.TrimSuffix(puzzles[0].Filename, ".json"))
		if err != nil {
			m.setDefaultPuzzle(m.createMinimalPuzzle())
			return nil
		}
	}

	m.setDefaultPuzzle(puzzle)
	return nil
}

func (m *Manager) setDefaultPuzzle(puzzle *engine.PuzzleConfig) {
	m.mu.Lock()
	m.defaultPuzzle = puzzle
	m.mu.Unlock()
}

// SavePuzzle saves a puzzle configuration to disk
func (m *Manager) SavePuzzle(name string, puzzle *engine.PuzzleConfig) error {
	if err := engine.ValidatePuzzleConfig(puzzle); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	puzzlePath := filepath.Join(m.puzzleDir, filename)

	data, err := json.MarshalIndent(puzzle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	if err := os.WriteFile(puzzlePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	m.mu.Lock()
	m.puzzles[name] = puzzle
	m.mu.Unlock()

	return nil
}

// createMinimalPuzzle creates a minimal valid puzzle
func (m *Manager) createMinimalPuzzle() *engine.PuzzleConfig {
	return &engine.PuzzleConfig{
		Name:        "default",
		Description: "Default minimal puzzle",
		Boards: [][]string{
			{
				"#E###",
				".....",
				".#.#.",
				".....",
				"..S..",
			},
		},
	}
}

// puzzleInfo summarizes a puzzle configuration for listings.
func puzzleInfo(filename, id string, puzzle *engine.PuzzleConfig) *service.PuzzleInfo {
	info := &service.PuzzleInfo{
		Filename:    filename,
		PuzzleID:    id,
		Name:        puzzle.Name,
		Description: puzzle.Description,
		Boards:      len(puzzle.Boards),
	}
	if len(puzzle.Boards) > 0 && len(puzzle.Boards[0]) > 1 {
		// First line is the exit row.
		info.Rows = len(puzzle.Boards[0]) - 1
		info.Cols = len(puzzle.Boards[0][1])
	}
	return info
}
