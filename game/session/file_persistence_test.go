package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/icefloe/icemaze/game/engine"
	"github.com/icefloe/icemaze/game/service"
)

// stubPuzzleManager serves a single fixed puzzle for persistence tests.
type stubPuzzleManager struct {
	config *engine.PuzzleConfig
}

func (s *stubPuzzleManager) LoadPuzzle(name string) (*engine.PuzzleConfig, error) {
	if s.config == nil {
		return nil, errors.New("puzzle not found")
	}
	return s.config, nil
}

func (s *stubPuzzleManager) ListPuzzles() ([]*service.PuzzleInfo, error) { return nil, nil }
func (s *stubPuzzleManager) GetDefault() *engine.PuzzleConfig            { return s.config }
func (s *stubPuzzleManager) SavePuzzle(name string, config *engine.PuzzleConfig) error {
	return nil
}

func newTestPersistence(t *testing.T) (*FilePersistence, string) {
	t.Helper()
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir, &stubPuzzleManager{config: testPuzzleConfig()})
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}
	return fp, dir
}

func newTestSession(id string) *service.Session {
	config := testPuzzleConfig()
	puzzle, _ := engine.NewPuzzle(config)
	return &service.Session{
		ID:             id,
		PuzzleID:       "classic",
		Puzzle:         puzzle,
		Config:         config,
		CreatedAt:      time.Now().Truncate(time.Second),
		LastAccessedAt: time.Now().Truncate(time.Second),
	}
}

func TestFilePersistence(t *testing.T) {
	fp, _ := newTestPersistence(t)

	t.Run("Save and load", func(t *testing.T) {
		session := newTestSession("abcd")
		if err := fp.Save(session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := fp.Load("abcd")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loaded.ID)
		}
		if loaded.PuzzleID != "classic" {
			t.Errorf("Expected puzzle ID classic, got %s", loaded.PuzzleID)
		}
		if loaded.Puzzle == nil {
			t.Error("Expected a rebuilt puzzle after load")
		}
		if !loaded.CreatedAt.Equal(session.CreatedAt) {
			t.Errorf("Expected CreatedAt %v, got %v", session.CreatedAt, loaded.CreatedAt)
		}
	})

	t.Run("Save with solution", func(t *testing.T) {
		session := newTestSession("with-solution")
		solvedAt := time.Now().Truncate(time.Second)
		session.Solution = &engine.Solution{
			Found: true,
			Moves: []engine.Direction{engine.Up, engine.Right, engine.Up},
		}
		session.SolvedAt = &solvedAt

		if err := fp.Save(session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := fp.Load("with-solution")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.Solution == nil || !loaded.Solution.Found {
			t.Fatal("Expected a found solution after load")
		}
		if len(loaded.Solution.Moves) != 3 {
			t.Errorf("Expected 3 moves, got %d", len(loaded.Solution.Moves))
		}
		if loaded.SolvedAt == nil || !loaded.SolvedAt.Equal(solvedAt) {
			t.Errorf("Expected SolvedAt %v, got %v", solvedAt, loaded.SolvedAt)
		}
	})

	t.Run("Save nil session", func(t *testing.T) {
		if err := fp.Save(nil); err == nil {
			t.Error("Expected error for nil session")
		}
	})

	t.Run("Load missing session", func(t *testing.T) {
		if _, err := fp.Load("ghost"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		session := newTestSession("to-delete")
		if err := fp.Save(session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := fp.Delete("to-delete"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if fp.Exists("to-delete") {
			t.Error("Expected session file to be removed")
		}
		if err := fp.Delete("to-delete"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound for repeated delete, got %v", err)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		if fp.Exists("nope") {
			t.Error("Expected Exists false for missing session")
		}
		if err := fp.Save(newTestSession("real")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !fp.Exists("real") {
			t.Error("Expected Exists true after save")
		}
	})
}

func TestFilePersistence_ListAll(t *testing.T) {
	fp, dir := newTestPersistence(t)

	for _, id := range []string{"one", "two"} {
		if err := fp.Save(newTestSession(id)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	// Non-session files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 session IDs, got %d: %v", len(ids), ids)
	}

	seen := make(map[string]bool)
	for _, id := range ids {
		seen[id] = true
	}
	if !seen["one"] || !seen["two"] {
		t.Errorf("Expected IDs one and two, got %v", ids)
	}
}

func TestFilePersistence_FileStructure(t *testing.T) {
	fp, dir := newTestPersistence(t)

	session := newTestSession("shape")
	if err := fp.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "shape.json"))
	if err != nil {
		t.Fatalf("Expected session file on disk: %v", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("Session file is not valid JSON: %v", err)
	}
	if data.ID != "shape" {
		t.Errorf("Expected ID shape, got %s", data.ID)
	}
	if data.PuzzleID != "classic" {
		t.Errorf("Expected puzzle ID classic, got %s", data.PuzzleID)
	}
}

func TestFilePersistence_LoadMissingPuzzle(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir, &stubPuzzleManager{})
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	// Write a session file by hand; the stub has no puzzle to resolve it.
	data := PersistedSessionData{ID: "orphan", PuzzleID: "gone"}
	raw, _ := json.Marshal(data)
	if err := os.WriteFile(filepath.Join(dir, "orphan.json"), raw, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := fp.Load("orphan"); err == nil {
		t.Error("Expected error when the puzzle cannot be resolved")
	}
}

func TestManagerWithPersistence(t *testing.T) {
	fp, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(fp)

	session, err := manager.Create("persist-me", "classic", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("Create auto-saves", func(t *testing.T) {
		if !fp.Exists(session.ID) {
			t.Error("Expected session file after Create")
		}
	})

	t.Run("Get falls back to persistence", func(t *testing.T) {
		if err := manager.DeleteFromMemory(session.ID); err != nil {
			t.Fatalf("DeleteFromMemory failed: %v", err)
		}

		reloaded, err := manager.Get(session.ID)
		if err != nil {
			t.Fatalf("Get after memory eviction failed: %v", err)
		}
		if reloaded.PuzzleID != "classic" {
			t.Errorf("Expected puzzle ID classic, got %s", reloaded.PuzzleID)
		}
	})

	t.Run("Delete removes the file", func(t *testing.T) {
		if err := manager.Delete(session.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if fp.Exists(session.ID) {
			t.Error("Expected session file to be removed")
		}
	})

	t.Run("LoadPersistedSessions", func(t *testing.T) {
		if _, err := manager.Create("reload-a", "classic", testPuzzleConfig()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := manager.Create("reload-b", "classic", testPuzzleConfig()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		fresh := NewManagerWithPersistence(fp)
		if err := fresh.LoadPersistedSessions(); err != nil {
			t.Fatalf("LoadPersistedSessions failed: %v", err)
		}
		if fresh.Count() != 2 {
			t.Errorf("Expected 2 loaded sessions, got %d", fresh.Count())
		}
	})

	t.Run("SaveAllSessions", func(t *testing.T) {
		if err := manager.SaveAllSessions(); err != nil {
			t.Fatalf("SaveAllSessions failed: %v", err)
		}
	})
}
