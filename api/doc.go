// Package api provides HTTP REST API handlers for the ice maze solver.
//
// The api package implements:
//   - RESTful endpoints for solve sessions
//   - Puzzle listing, retrieval, and creation
//   - Solution and replay retrieval
//   - WebSocket upgrade handling for progress streaming
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional puzzle_id in body)
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Solving:
//   - POST /api/sessions/{id}/solve - Run the search (optional max_generations)
//   - GET /api/sessions/{id}/solution - Get the stored solution
//   - GET /api/sessions/{id}/replay - Get a step-by-step replay
//
// Puzzles:
//   - GET /api/puzzles - List available puzzles
//   - GET /api/puzzles/{name} - Get one puzzle configuration
//   - POST /api/puzzles - Create a puzzle (puzzle_id + config)
//
// WebSocket:
//   - GET /ws?session={id} - Stream progress and solution events
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Usage:
//
//	server := api.NewServer(solverService, hub)
//	http.ListenAndServe(":8080", server)
package api
