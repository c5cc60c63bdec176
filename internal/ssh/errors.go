package ssh

import "errors"

// Connection errors, fatal on the initial connect
var (
	ErrConnectTimeout  = errors.New("connection to remote host timed out")
	ErrAuthRejected    = errors.New("authentication rejected by remote host")
	ErrHostUnreachable = errors.New("remote host unreachable")
	ErrKeyInvalid      = errors.New("private key is invalid")
)

// Execution errors, recoverable inside a mode
var (
	ErrExecTimeout           = errors.New("remote command timed out")
	ErrDisconnected          = errors.New("connection to remote host lost")
	ErrMultilineNotSupported = errors.New("multiline commands are not supported")
	ErrInterrupted           = errors.New("interrupted")
)
