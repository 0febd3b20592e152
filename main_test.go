package main

import (
	"os"
	"testing"

	"github.com/icefloe/icemaze/transport/websocket"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedAppName := "Ice Maze Solver Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	originalPuzzleDir := *puzzleDir
	*puzzleDir = "puzzles"
	defer func() { *puzzleDir = originalPuzzleDir }()

	if _, err := os.Stat("puzzles"); os.IsNotExist(err) {
		t.Skip("Skipping test - puzzles directory not found")
	}

	hub := websocket.NewHub()
	go hub.Run()

	solverService, err := initializeServices(hub)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if solverService == nil {
		t.Fatal("Expected solver service to be initialized")
	}
}

func TestInitializeServices_InvalidPuzzleDir(t *testing.T) {
	originalPuzzleDir := *puzzleDir
	*puzzleDir = "/non/existent/path"
	defer func() { *puzzleDir = originalPuzzleDir }()

	hub := websocket.NewHub()
	go hub.Run()

	_, err := initializeServices(hub)
	if err == nil {
		t.Error("Expected error for non-existent puzzle directory")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *puzzleDir == "" {
		t.Error("Puzzle directory should have a default value")
	}
}

// Note: main(), runHTTPServer(), and runStdioMCPWithInternalServer() start
// servers and block, so they are exercised by integration tests against a
// running binary rather than unit tests here.
