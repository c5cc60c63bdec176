package modes

import "time"

// Mode identifies the active sub-shell. Root is the initial state.
type Mode int

const (
	Root Mode = iota
	Shell
	Git
	Sql
	Test
)

func (m Mode) String() string {
	switch m {
	case Root:
		return "root"
	case Shell:
		return "cmd"
	case Git:
		return "git"
	case Sql:
		return "sql"
	case Test:
		return "test"
	}
	return "unknown"
}

// Per-mode context, populated by one-time prompts on entry and
// discarded when the user exits the mode back to Root.

type GitContext struct {
	RepoPath string
}

type SQLContext struct {
	Database       string
	ConnectLatency time.Duration
}

type TestContext struct {
	RepoPath  string
	VenvName  string
	TestsPath string
}
