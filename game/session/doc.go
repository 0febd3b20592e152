// Package session manages the lifecycle of solve sessions.
//
// The Manager keeps sessions in memory behind a read-write lock, generates
// short hex IDs, expires stale sessions, and optionally persists every
// session through the SessionPersistence interface. FilePersistence stores
// one JSON file per session and rebuilds the puzzle from the puzzle manager
// on load, so solutions survive restarts without duplicating board data.
package session
