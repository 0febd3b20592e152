package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/icefloe/icemaze/game/engine"
	"github.com/icefloe/icemaze/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ice Maze Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ice Maze Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

WHAT IT DOES:
Solves ice maze puzzles: one or two tokens slide across boards with walls,
pits, ice, and teleporters, and every token must reach the exit above the
top row. All tokens receive the same move each turn.

AVAILABLE TOOLS:
- create_session: Create a solve session for a puzzle
- list_sessions: List all active sessions
- get_session: Get session details including board layouts
- solve_puzzle: Run the breadth-first search for a session
- get_solution: Get the stored solution of a solved session
- replay_solution: Step through a stored solution move by move
- list_puzzles: List available puzzles
- describe_board: Render the boards of a session as text
- solver_instructions: Get the full rules of the puzzle`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new solve session with optional puzzle selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the puzzle to load (optional, defaults to the configured default puzzle)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active solve sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Solving
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Run the breadth-first search for a session and return the solution, if any",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"max_generations": map[string]interface{}{
					"type":        "integer",
					"description": "Stop the search after this many frontier generations (optional, 0 means unbounded)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolvePuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_solution",
		Description: "Get the stored solution of a previously solved session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSolution)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "replay_solution",
		Description: "Step through a stored solution, showing token positions after every move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReplaySolution)

	// Puzzles
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_board",
		Description: "Render the boards of a session as text grids with the token positions marked",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDescribeBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get the full rules of the ice maze puzzle and how the solver searches it",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	puzzleID, _ := args["puzzle_id"].(string)

	body := map[string]string{}
	if puzzleID != "" {
		body["puzzle_id"] = puzzleID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPuzzle: %s\nTokens: %d\n", session.ID, session.PuzzleName, session.Tokens)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		state := "unsolved"
		if s.Solution != nil {
			if s.Solution.Found {
				state = fmt.Sprintf("solved in %d moves", len(s.Solution.Moves))
			} else {
				state = "no solution"
			}
		}
		result += fmt.Sprintf("- %s (Puzzle: %s, %s, Created: %s)\n",
			s.ID, s.PuzzleName, state, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolvePuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if genCap, ok := args["max_generations"].(float64); ok {
		body["max_generations"] = int(genCap)
	}

	var result service.SolveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/solve", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatSolveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleGetSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var solution engine.Solution
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/solution", sessionID), nil, &solution)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolution(&solution)), nil
}

func (c *Client) handleReplaySolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var replay service.ReplayResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/replay", sessionID), nil, &replay)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReplay(&replay)), nil
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Puzzles []service.PuzzleInfo `json:"puzzles"`
	}
	err := c.apiCall("GET", "/api/puzzles", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Puzzles:\n\n"
	for _, p := range response.Puzzles {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Boards: %d, Grid: %dx%d\n\n",
			p.Name, p.PuzzleID, p.Description, p.Boards, p.Rows, p.Cols)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Session %s, puzzle %q, %d board(s):\n", session.ID, session.PuzzleName, len(session.Layouts))
	for i, layout := range session.Layouts {
		fmt.Fprintf(&sb, "\nBoard %d (token marked S, exit E above the top row):\n", i+1)
		for _, row := range layout {
			sb.WriteString(row)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("\nLegend: . open, # wall, O pit, I ice, T teleporter, S token start, E exit\n")

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Ice Maze Solver - Rules

OBJECTIVE:
Every token must leave its board through the exit, a single opening in the
virtual row above the top of the grid. A puzzle has one or two boards, each
with exactly one token; all tokens receive the SAME move every turn.

TILES:
• . - Open ground: the token stops here
• # - Wall: the token bounces back and stays where it was
• O - Pit: the token falls in and the whole attempt fails
• I - Ice: the token keeps sliding in the same direction
• T - Teleporter: the token jumps to the paired teleporter and stops
• S - Token start position (open ground underneath)
• E - Exit: marked in the row above the grid; stepping through it wins

MOVEMENT:
One move shifts each token one tile in the chosen direction (up, down,
left, right). Anything outside the grid is a wall, except the exit cell.
Sliding on ice continues until the token reaches a non-ice tile; a wall
beyond ice stops the token ON the last ice tile.

JOINT RULES (two boards):
• Both tokens move simultaneously with the same direction
• If either token falls into a pit, the attempt fails
• If one token exits while the other does not, the attempt fails
• The puzzle is solved only when both tokens exit on the SAME move

THE SOLVER:
The solver runs a breadth-first search over joint token positions,
pruning any state a lineage has already visited. Directions are tried
in the order up, down, right, left. Some puzzles have no solution;
the solver reports that as a normal result.

WORKFLOW:
1. list_puzzles to see what is available
2. create_session with a puzzle_id
3. describe_board to inspect the grids
4. solve_puzzle to run the search
5. get_solution / replay_solution to inspect the result`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session: %s\n", session.ID)
	fmt.Fprintf(&sb, "Puzzle: %s\n", session.PuzzleName)
	fmt.Fprintf(&sb, "Tokens: %d\n", session.Tokens)
	fmt.Fprintf(&sb, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Last accessed: %s\n", session.LastAccessedAt.Format(time.RFC3339))

	if session.Solution == nil {
		sb.WriteString("Status: not solved yet\n")
	} else if session.Solution.Found {
		fmt.Fprintf(&sb, "Status: solved in %d moves (%s)\n",
			len(session.Solution.Moves), formatMoves(session.Solution.Moves))
	} else {
		sb.WriteString("Status: searched, no solution exists\n")
	}

	return sb.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Puzzle: %s (session %s)\n", result.PuzzleName, result.SessionID)
	fmt.Fprintf(&sb, "Search took %dms, %d states expanded over %d generations\n",
		result.DurationMS, result.Solution.Expanded, result.Solution.Generations)

	if result.Solution.Found {
		fmt.Fprintf(&sb, "\nSOLVED in %d moves:\n%s\n",
			len(result.Solution.Moves), formatMoves(result.Solution.Moves))
	} else if result.Capped {
		sb.WriteString("\nSearch stopped at the generation cap before finding a solution.\n")
	} else {
		sb.WriteString("\nNo solution exists for this puzzle.\n")
	}

	return sb.String()
}

func formatSolution(solution *engine.Solution) string {
	if !solution.Found {
		return fmt.Sprintf("No solution exists (searched %d generations, %d states expanded).",
			solution.Generations, solution.Expanded)
	}
	return fmt.Sprintf("Solution (%d moves): %s", len(solution.Moves), formatMoves(solution.Moves))
}

func formatReplay(replay *service.ReplayResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Replay of session %s (%d moves, final status: %s)\n\n",
		replay.SessionID, len(replay.Moves), replay.Status)

	for i, step := range replay.Steps {
		fmt.Fprintf(&sb, "%2d. %-5s ->", i+1, step.Move)
		for j, pos := range step.Tokens {
			if j > 0 {
				sb.WriteString(" |")
			}
			fmt.Fprintf(&sb, " token %d at (%d,%d) %s", j+1, pos.X, pos.Y, step.Outcomes[j])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func formatMoves(moves []engine.Direction) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}
