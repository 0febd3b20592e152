package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/icefloe/icemaze/game/engine"
)

// ErrNotSolved is returned when a solution is requested before Solve ran.
var ErrNotSolved = errors.New("session has not been solved yet")

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	sessions SessionManager
	puzzles  PuzzleManager
	progress ProgressSink
	log      *logrus.Entry
	mu       sync.RWMutex
}

// NewSolverService creates a new solver service instance
func NewSolverService(sessions SessionManager, puzzles PuzzleManager, progress ProgressSink) SolverService {
	return &solverServiceImpl{
		sessions: sessions,
		puzzles:  puzzles,
		progress: progress,
		log:      logrus.WithField("component", "solver-service"),
	}
}

// CreateSession creates a new solve session for the named puzzle
func (s *solverServiceImpl) CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.PuzzleConfig
	var err error
	if puzzleID != "" {
		config, err = s.puzzles.LoadPuzzle(puzzleID)
		if err != nil {
			available, listErr := s.puzzles.ListPuzzles()
			if listErr == nil && len(available) > 0 {
				var ids []string
				for _, p := range available {
					ids = append(ids, p.PuzzleID)
				}
				return nil, fmt.Errorf("puzzle %q not found. Available puzzles: %v", puzzleID, ids)
			}
			return nil, fmt.Errorf("failed to load puzzle %s: %w", puzzleID, err)
		}
	} else {
		config = s.puzzles.GetDefault()
		puzzleID = s.getPuzzleID(config.Name)
	}

	// Let the session manager generate a proper short ID
	session, err := s.sessions.Create("", puzzleID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"session": session.ID,
		"puzzle":  puzzleID,
	}).Info("session created")

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *solverServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *solverServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, sessionInfo(session))
	}
	return infos, nil
}

// DeleteSession removes a session
func (s *solverServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Solve runs the frontier search for the session's puzzle. Progress events
// are forwarded to the configured sink. An exhausted search stores and
// returns a not-found solution rather than an error.
func (s *solverServiceImpl) Solve(ctx context.Context, sessionID string, maxGenerations int) (*SolveResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	var observer engine.Observer
	if s.progress != nil {
		progress := s.progress
		observer = func(generation, frontier int) {
			progress(ProgressEvent{
				SessionID:  sessionID,
				Generation: generation,
				Frontier:   frontier,
			})
		}
	}

	started := time.Now()
	solution, err := session.Puzzle.Solve(engine.SolveOptions{
		MaxGenerations: maxGenerations,
		Observer:       observer,
	})
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(started)

	s.mu.Lock()
	now := time.Now()
	session.Solution = &solution
	session.SolvedAt = &now
	s.mu.Unlock()

	s.sessions.UpdateLastAccessed(sessionID)
	if err := s.sessions.Save(sessionID); err != nil {
		s.log.WithError(err).WithField("session", sessionID).Warn("failed to persist solved session")
	}

	s.log.WithFields(logrus.Fields{
		"session":     sessionID,
		"found":       solution.Found,
		"moves":       len(solution.Moves),
		"generations": solution.Generations,
		"expanded":    solution.Expanded,
		"elapsed":     elapsed,
	}).Info("solve finished")

	return &SolveResult{
		SessionID:  sessionID,
		PuzzleName: session.Puzzle.Name(),
		Solution:   solution,
		DurationMS: elapsed.Milliseconds(),
		Capped:     !solution.Found && maxGenerations > 0 && solution.Generations >= maxGenerations,
	}, nil
}

// GetSolution returns the stored solution for a session
func (s *solverServiceImpl) GetSolution(ctx context.Context, sessionID string) (*engine.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if session.Solution == nil {
		return nil, ErrNotSolved
	}
	return session.Solution, nil
}

// Replay replays the stored solution through the movement resolver
func (s *solverServiceImpl) Replay(ctx context.Context, sessionID string) (*ReplayResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if session.Solution == nil {
		return nil, ErrNotSolved
	}

	steps, status, err := session.Puzzle.Replay(session.Solution.Moves)
	if err != nil {
		return nil, fmt.Errorf("replay failed: %w", err)
	}

	return &ReplayResult{
		SessionID: sessionID,
		Moves:     session.Solution.Moves,
		Steps:     steps,
		Status:    status,
	}, nil
}

// ListPuzzles returns all available puzzles
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// LoadPuzzle loads one puzzle configuration
func (s *solverServiceImpl) LoadPuzzle(ctx context.Context, puzzleID string) (*engine.PuzzleConfig, error) {
	return s.puzzles.LoadPuzzle(puzzleID)
}

// SavePuzzle validates and stores a puzzle configuration
func (s *solverServiceImpl) SavePuzzle(ctx context.Context, puzzleID string, config *engine.PuzzleConfig) error {
	return s.puzzles.SavePuzzle(puzzleID, config)
}

// getPuzzleID returns the puzzle_id for a given display name, used for
// consistent API responses
func (s *solverServiceImpl) getPuzzleID(name string) string {
	available, err := s.puzzles.ListPuzzles()
	if err == nil {
		for _, p := range available {
			if p.Name == name {
				return p.PuzzleID
			}
		}
	}
	if name == "" {
		return "default"
	}
	return name
}

// sessionInfo converts a session into its API representation.
func sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		PuzzleName:     session.PuzzleID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Tokens:         session.Puzzle.Tokens(),
		Layouts:        session.Puzzle.Layouts(),
		Solution:       session.Solution,
		SolvedAt:       session.SolvedAt,
	}
}
