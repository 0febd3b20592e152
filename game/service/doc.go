// Package service orchestrates solve sessions over the engine.
//
// SolverService binds a SessionManager and a PuzzleManager together: sessions
// pair a puzzle with its (possibly still missing) solution, solves run the
// engine's frontier search and forward progress events to a ProgressSink, and
// stored solutions can be replayed step by step through the movement
// resolver.
package service
