// Package config manages puzzle configurations stored as JSON files.
//
// The Manager loads puzzles from a directory, validates them through the
// engine parser, caches them behind a read-write lock, and can persist new
// puzzles back to disk. When the directory holds no usable puzzle a built-in
// minimal puzzle serves as the default.
package config
