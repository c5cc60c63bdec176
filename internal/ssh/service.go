package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"wcli/internal/credentials"
	"wcli/internal/logger"

	"github.com/google/uuid"
	"github.com/melbahja/goph"
	"golang.org/x/crypto/ssh"
)

// PassphraseFunc supplies the passphrase for an encrypted PEM key.
type PassphraseFunc func() (string, error)

// remoteRunner is the dialed side of the connection. Production code
// uses a goph client; tests inject a fake.
type remoteRunner interface {
	Run(ctx context.Context, command string) (*CommandResult, error)
	Close() error
}

// Service owns the single long-lived connection to the remote host.
// It is not safe for concurrent use; the REPL is strictly sequential.
type Service struct {
	// PassphrasePrompt is consulted once if the PEM key turns out to
	// be encrypted. Nil means an encrypted key is a KeyInvalid error.
	PassphrasePrompt PassphraseFunc

	ConnectTimeout time.Duration
	ExecTimeout    time.Duration

	creds   *credentials.Credentials
	runner  remoteRunner
	session Session

	dial func(s *Service) (remoteRunner, error)
}

func NewService(creds *credentials.Credentials) *Service {
	return &Service{
		ConnectTimeout: 10 * time.Second,
		ExecTimeout:    120 * time.Second,
		creds:          creds,
		dial:           dialGoph,
	}
}

// Session returns a snapshot of the connection state.
func (s *Service) Session() Session {
	return s.session
}

// Connect establishes the connection if there is none, or if the
// previous one was marked stale. Idempotent while connected.
func (s *Service) Connect() error {
	if s.runner != nil && s.session.Connected {
		return nil
	}

	if s.runner != nil {
		_ = s.runner.Close()
		s.runner = nil
	}

	runner, err := s.dial(s)

	if err != nil {
		s.session.Connected = false
		s.session.LastError = err
		return err
	}

	s.runner = runner
	s.session = Session{ID: uuid.New(), Connected: true}

	logger.Debug("connected to %s (session %s)", s.creds.Address, s.session.ID)

	return nil
}

func (s *Service) Close() error {
	if s.runner == nil {
		return nil
	}

	err := s.runner.Close()
	s.runner = nil
	s.session.Connected = false

	return err
}

// Execute relays a single line to the remote host and waits for the
// result. A line containing an embedded terminator is rejected before
// any network activity. On a detected disconnect the Service performs
// exactly one silent reconnect and one retry; a second failure is
// surfaced as ErrDisconnected.
func (s *Service) Execute(ctx context.Context, command string) (*CommandResult, error) {
	if strings.ContainsAny(command, "\n\r") {
		return nil, ErrMultilineNotSupported
	}

	if err := s.Connect(); err != nil {
		return nil, err
	}

	result, err := s.run(ctx, command)

	if err == nil {
		return result, nil
	}

	if !isDisconnect(err) {
		return nil, err
	}

	logger.Warn("connection lost, attempting reconnect: %v", err)

	s.session.Connected = false
	s.session.LastError = err

	if connectErr := s.Connect(); connectErr != nil {
		return nil, fmt.Errorf("%w: reconnect failed: %v", ErrDisconnected, connectErr)
	}

	result, err = s.run(ctx, command)

	if err != nil {
		if isDisconnect(err) {
			s.session.Connected = false
			s.session.LastError = err
			return nil, fmt.Errorf("%w: %v", ErrDisconnected, err)
		}
		return nil, err
	}

	return result, nil
}

func (s *Service) run(ctx context.Context, command string) (*CommandResult, error) {
	execCtx := ctx
	if s.ExecTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, s.ExecTimeout)
		defer cancel()
	}

	result, err := s.runner.Run(execCtx, command)

	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			// The command may still be running remotely; only the
			// local wait is cancelled.
			s.session.Connected = false
			s.session.LastError = ErrInterrupted
			return nil, ErrInterrupted
		}
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			s.session.Connected = false
			s.session.LastError = ErrExecTimeout
			return nil, ErrExecTimeout
		}
		return nil, err
	}

	return result, nil
}

func isDisconnect(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, ErrDisconnected) {
		return true
	}

	msg := err.Error()

	for _, marker := range []string{
		"use of closed network connection",
		"connection reset by peer",
		"broken pipe",
		"ssh: disconnect",
		"failed to create session",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// dialGoph opens the authenticated connection and verifies it with a
// throwaway command, classifying failures per the connect taxonomy.
func dialGoph(s *Service) (remoteRunner, error) {
	keyBytes, err := os.ReadFile(s.creds.KeyPath)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)

	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) && s.PassphrasePrompt != nil {
			passphrase, promptErr := s.PassphrasePrompt()
			if promptErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, promptErr)
			}
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(passphrase))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
		}
	}

	sshConfig := &ssh.ClientConfig{
		User:            s.creds.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         s.ConnectTimeout,
	}

	hostPort := net.JoinHostPort(s.creds.Host, fmt.Sprintf("%d", s.creds.Port))

	conn, err := net.DialTimeout("tcp", hostPort, sshConfig.Timeout)

	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrConnectTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, hostPort, sshConfig)

	if err != nil {
		conn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, fmt.Errorf("%w: %v", ErrAuthRejected, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	session, err := client.NewSession()

	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}

	defer session.Close()

	if err = session.Run("echo 'connection test'"); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}

	return &gophRunner{client: &goph.Client{Client: client}}, nil
}

type gophRunner struct {
	client *goph.Client
}

func (g *gophRunner) Run(ctx context.Context, command string) (*CommandResult, error) {
	cmd, err := g.client.Command(command)

	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	done := make(chan error, 1)

	go func() {
		done <- cmd.Run()
	}()

	select {
	case <-ctx.Done():
		_ = cmd.Close()
		<-done
		return nil, ctx.Err()
	case err = <-done:
	}

	result := &CommandResult{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			// Remote non-zero exit is ordinary output, not a failure
			// of the relay.
			result.ExitCode = exitErr.ExitStatus()
			return result, nil
		}
		return nil, err
	}

	return result, nil
}

func (g *gophRunner) Close() error {
	return g.client.Close()
}
