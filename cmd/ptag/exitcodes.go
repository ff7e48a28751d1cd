package main

// Exit codes. User errors and environment errors get distinct codes so
// scripts can tell a bad query from a broken store.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // User error (invalid path, tag, or query; bad arguments)
	ExitConfigError = 2 // Configuration error (no store found, invalid config)
	ExitDataError   = 3 // Data error (corrupt store, I/O failure)
)
