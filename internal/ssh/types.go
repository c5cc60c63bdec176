package ssh

import "github.com/google/uuid"

// Session tracks the state of the single remote connection owned by
// the Service for the lifetime of the process.
type Session struct {
	ID        uuid.UUID
	Connected bool
	LastError error
}

type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
