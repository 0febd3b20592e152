// Package mcp provides a Model Context Protocol server for the ice maze solver.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for solver operations
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create a solve session with puzzle selection
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - solve_puzzle: Run the breadth-first search for a session
//   - get_solution: Retrieve a stored solution
//   - replay_solution: Step through a stored solution move by move
//   - list_puzzles: List available puzzles
//   - describe_board: Render a session's boards as text grids
//   - solver_instructions: Get the full puzzle rules
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// The client is a thin proxy: every tool call issues a request against the
// REST API and formats the JSON response as text. This keeps a single source
// of truth for session state regardless of which transport an agent uses.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
