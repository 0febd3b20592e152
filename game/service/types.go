package service

import (
	"time"

	"github.com/icefloe/icemaze/game/engine"
)

// SessionInfo provides information about a solve session
type SessionInfo struct {
	ID             string           `json:"id"`
	PuzzleName     string           `json:"puzzle_name"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Tokens         int              `json:"tokens"`
	Layouts        [][]string       `json:"layouts"`
	Solution       *engine.Solution `json:"solution,omitempty"`
	SolvedAt       *time.Time       `json:"solved_at,omitempty"`
}

// SolveResult contains the outcome of one solve run
type SolveResult struct {
	SessionID  string          `json:"session_id"`
	PuzzleName string          `json:"puzzle_name"`
	Solution   engine.Solution `json:"solution"`
	DurationMS int64           `json:"duration_ms"`
	Capped     bool            `json:"capped,omitempty"` // true when a generation cap stopped the search
}

// ReplayResult contains the step-by-step replay of a stored solution
type ReplayResult struct {
	SessionID string              `json:"session_id"`
	Moves     []engine.Direction  `json:"moves"`
	Steps     []engine.ReplayStep `json:"steps"`
	Status    engine.Status       `json:"status"`
}

// ProgressEvent reports search progress for one session
type ProgressEvent struct {
	SessionID  string `json:"session_id"`
	Generation int    `json:"generation"`
	Frontier   int    `json:"frontier"`
}

// PuzzleInfo provides information about a stored puzzle
type PuzzleInfo struct {
	Filename    string `json:"filename"`
	PuzzleID    string `json:"puzzle_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Boards      int    `json:"boards"`
	Rows        int    `json:"rows,omitempty"`
	Cols        int    `json:"cols,omitempty"`
}

// Session represents an active solve session
type Session struct {
	ID             string
	PuzzleID       string
	Puzzle         *engine.Puzzle
	Config         *engine.PuzzleConfig
	Solution       *engine.Solution
	SolvedAt       *time.Time
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
