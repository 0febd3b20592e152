package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/icefloe/icemaze/game/engine"
	"github.com/icefloe/icemaze/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":          "test-session",
		"puzzle_name": "classic",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/sessions/test-session", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/puzzles", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/ghost", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}
	if !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected API error message to surface, got: %v", err)
	}
}

func TestClient_handleCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "test-session-123",
			PuzzleName: "classic",
			Tokens:     1,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleSolvePuzzle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/sess-1/solve" {
			t.Errorf("Expected POST /api/sessions/sess-1/solve, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["max_generations"].(float64) != 10 {
			t.Errorf("Expected max_generations 10, got %v", body["max_generations"])
		}

		resp := service.SolveResult{
			SessionID:  "sess-1",
			PuzzleName: "classic",
			Solution: engine.Solution{
				Found:       true,
				Moves:       []engine.Direction{engine.Up, engine.Right, engine.Up},
				Generations: 3,
				Expanded:    12,
			},
			DurationMS: 2,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "solve_puzzle",
			Arguments: map[string]interface{}{
				"session_id":      "sess-1",
				"max_generations": float64(10),
			},
		},
	}

	result, err := client.handleSolvePuzzle(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolvePuzzle failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "SOLVED in 3 moves") {
		t.Errorf("Expected solved summary, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "up, right, up") {
		t.Errorf("Expected move list in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleSolvePuzzle_NoSolution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.SolveResult{
			SessionID: "sess-1",
			Solution:  engine.Solution{Found: false, Generations: 4, Expanded: 9},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "solve_puzzle",
			Arguments: map[string]interface{}{"session_id": "sess-1"},
		},
	}

	result, err := client.handleSolvePuzzle(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolvePuzzle failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	if !strings.Contains(resultStr.Text, "No solution exists") {
		t.Errorf("Expected no-solution summary, got: %s", resultStr.Text)
	}
}

func TestClient_handleDescribeBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.SessionInfo{
			ID:         "sess-1",
			PuzzleName: "classic",
			Tokens:     1,
			Layouts: [][]string{
				{"#E#", "...", ".S."},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "describe_board",
			Arguments: map[string]interface{}{"session_id": "sess-1"},
		},
	}

	result, err := client.handleDescribeBoard(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDescribeBoard failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	for _, want := range []string{"#E#", ".S.", "Legend"} {
		if !strings.Contains(resultStr.Text, want) {
			t.Errorf("Expected %q in board description, got: %s", want, resultStr.Text)
		}
	}
}

func TestClient_handleSolverInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "solver_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleSolverInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleSolverInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Ice Maze Solver - Rules",
		"OBJECTIVE:",
		"TILES:",
		"MOVEMENT:",
		"JOINT RULES (two boards):",
		"THE SOLVER:",
		"WORKFLOW:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestFormatSolution(t *testing.T) {
	solved := &engine.Solution{
		Found: true,
		Moves: []engine.Direction{engine.Up, engine.Left},
	}
	if got := formatSolution(solved); !strings.Contains(got, "2 moves") || !strings.Contains(got, "up, left") {
		t.Errorf("Unexpected solved formatting: %s", got)
	}

	unsolved := &engine.Solution{Found: false, Generations: 7, Expanded: 20}
	if got := formatSolution(unsolved); !strings.Contains(got, "No solution exists") {
		t.Errorf("Unexpected unsolved formatting: %s", got)
	}
}

func TestFormatReplay(t *testing.T) {
	replay := &service.ReplayResult{
		SessionID: "sess-1",
		Moves:     []engine.Direction{engine.Up, engine.Up},
		Steps: []engine.ReplayStep{
			{
				Move:     engine.Up,
				Tokens:   []engine.Position{{X: 1, Y: 1}},
				Outcomes: []engine.OutcomeKind{engine.Arrived},
			},
			{
				Move:     engine.Up,
				Tokens:   []engine.Position{{X: 1, Y: 1}},
				Outcomes: []engine.OutcomeKind{engine.Exited},
			},
		},
		Status: engine.Succeeded,
	}

	result := formatReplay(replay)

	for _, want := range []string{"final status: succeeded", "(1,1)", "arrived", "exited"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in replay output, got: %s", want, result)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
