package service

import (
	"context"

	"github.com/icefloe/icemaze/game/engine"
)

// SolverService defines all puzzle-solving operations
type SolverService interface {
	// Session Management
	CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Solving
	Solve(ctx context.Context, sessionID string, maxGenerations int) (*SolveResult, error)
	GetSolution(ctx context.Context, sessionID string) (*engine.Solution, error)
	Replay(ctx context.Context, sessionID string) (*ReplayResult, error)

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	LoadPuzzle(ctx context.Context, puzzleID string) (*engine.PuzzleConfig, error)
	SavePuzzle(ctx context.Context, puzzleID string, config *engine.PuzzleConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, puzzleID string, config *engine.PuzzleConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PuzzleManager handles puzzle configuration loading
type PuzzleManager interface {
	LoadPuzzle(name string) (*engine.PuzzleConfig, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	GetDefault() *engine.PuzzleConfig
	SavePuzzle(name string, config *engine.PuzzleConfig) error
}

// ProgressSink consumes search progress events, typically by broadcasting
// them to connected clients. A nil sink silences progress reporting.
type ProgressSink func(ProgressEvent)
