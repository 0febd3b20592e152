package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/icefloe/icemaze/game/engine"
)

func testPuzzleConfig() *engine.PuzzleConfig {
	return &engine.PuzzleConfig{
		Name:        "Test Puzzle",
		Description: "Open field below an exit",
		Boards: [][]string{
			{
				"#E###",
				".....",
				".....",
				"..S..",
			},
		},
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()

	t.Run("With explicit ID", func(t *testing.T) {
		session, err := manager.Create("sess-1", "classic", testPuzzleConfig())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if session.ID != "sess-1" {
			t.Errorf("Expected ID sess-1, got %s", session.ID)
		}
		if session.PuzzleID != "classic" {
			t.Errorf("Expected puzzle ID classic, got %s", session.PuzzleID)
		}
		if session.Puzzle == nil {
			t.Error("Expected a built puzzle")
		}
		if session.Puzzle.Tokens() != 1 {
			t.Errorf("Expected 1 token, got %d", session.Puzzle.Tokens())
		}
	})

	t.Run("Generated ID", func(t *testing.T) {
		session, err := manager.Create("", "classic", testPuzzleConfig())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character generated ID, got %q", session.ID)
		}
	})

	t.Run("Duplicate ID", func(t *testing.T) {
		if _, err := manager.Create("sess-1", "classic", testPuzzleConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("Duplicate ID different case", func(t *testing.T) {
		if _, err := manager.Create("SESS-1", "classic", testPuzzleConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("Invalid puzzle", func(t *testing.T) {
		bad := &engine.PuzzleConfig{Name: "Bad"}
		if _, err := manager.Create("sess-bad", "bad", bad); err == nil {
			t.Error("Expected error for invalid puzzle config")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	if _, err := manager.Create("sess-1", "classic", testPuzzleConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("Existing session", func(t *testing.T) {
		session, err := manager.Get("sess-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if session.ID != "sess-1" {
			t.Errorf("Expected ID sess-1, got %s", session.ID)
		}
	})

	t.Run("Case-insensitive lookup", func(t *testing.T) {
		if _, err := manager.Get("SESS-1"); err != nil {
			t.Errorf("Expected case-insensitive lookup to succeed, got %v", err)
		}
	})

	t.Run("Missing session", func(t *testing.T) {
		if _, err := manager.Get("ghost"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	if _, err := manager.Create("sess-1", "classic", testPuzzleConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := manager.Delete("sess-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := manager.Get("sess-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected session to be gone, got %v", err)
	}

	if err := manager.Delete("sess-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for repeated delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()

	if len(manager.List()) != 0 {
		t.Error("Expected empty list for new manager")
	}

	for _, id := range []string{"a", "b", "c"} {
		if _, err := manager.Create(id, "classic", testPuzzleConfig()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 sessions, got %d", got)
	}
	if got := manager.Count(); got != 3 {
		t.Errorf("Expected Count 3, got %d", got)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, err := manager.Create("sess-1", "classic", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := session.LastAccessedAt
	time.Sleep(5 * time.Millisecond)

	if err := manager.UpdateLastAccessed("sess-1"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}

	if !session.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to advance")
	}

	if err := manager.UpdateLastAccessed("ghost"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()

	fresh, err := manager.Create("fresh", "classic", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stale, err := manager.Create("stale", "classic", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	stale.LastAccessedAt = time.Now().Add(-48 * time.Hour)

	removed := manager.CleanupExpiredSessions(24 * time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}

	if _, err := manager.Get("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected stale session to be removed")
	}
	if _, err := manager.Get(fresh.ID); err != nil {
		t.Errorf("Expected fresh session to survive, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	if _, err := manager.Create("shared", "classic", testPuzzleConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := manager.Get("shared"); err != nil {
				t.Errorf("Concurrent Get failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			manager.List()
		}()
		go func() {
			defer wg.Done()
			if err := manager.UpdateLastAccessed("shared"); err != nil {
				t.Errorf("Concurrent UpdateLastAccessed failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		session, err := manager.Create("", "classic", testPuzzleConfig())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(session.ID) != 4 {
			t.Fatalf("Expected 4-character ID, got %q", session.ID)
		}
		if seen[session.ID] {
			t.Fatalf("Duplicate generated session ID: %s", session.ID)
		}
		seen[session.ID] = true
	}
}
