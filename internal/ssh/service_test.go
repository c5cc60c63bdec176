package ssh

import (
	"context"
	"errors"
	"testing"
	"time"

	"wcli/internal/credentials"
)

type fakeRunner struct {
	results []fakeResult
	calls   int
	block   bool
	closed  bool
}

type fakeResult struct {
	result *CommandResult
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, command string) (*CommandResult, error) {
	f.calls++

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if len(f.results) == 0 {
		return &CommandResult{Stdout: command}, nil
	}

	next := f.results[0]
	f.results = f.results[1:]

	return next.result, next.err
}

func (f *fakeRunner) Close() error {
	f.closed = true
	return nil
}

func newTestService(dial func(s *Service) (remoteRunner, error)) *Service {
	service := NewService(&credentials.Credentials{
		Password: "x",
		User:     "ec2-user",
		Host:     "host",
		Port:     22,
		KeyPath:  "/tmp/key.pem",
		Address:  "ec2-user@host",
	})
	service.dial = dial
	return service
}

func TestExecute_RejectsMultilineBeforeDialing(t *testing.T) {
	dialed := 0

	service := newTestService(func(s *Service) (remoteRunner, error) {
		dialed++
		return &fakeRunner{}, nil
	})

	_, err := service.Execute(context.Background(), "ls\nrm -rf /")

	if !errors.Is(err, ErrMultilineNotSupported) {
		t.Fatalf("expected ErrMultilineNotSupported, got %v", err)
	}

	if dialed != 0 {
		t.Errorf("expected no dial attempt, got %d", dialed)
	}
}

func TestExecute_ForwardsCommandVerbatim(t *testing.T) {
	runner := &fakeRunner{}

	service := newTestService(func(s *Service) (remoteRunner, error) {
		return runner, nil
	})

	result, err := service.Execute(context.Background(), "ls -l")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Stdout != "ls -l" {
		t.Errorf("expected command forwarded verbatim, got %q", result.Stdout)
	}

	if !service.Session().Connected {
		t.Errorf("expected session to be connected")
	}
}

func TestExecute_RemoteNonZeroExitIsNotAnError(t *testing.T) {
	runner := &fakeRunner{results: []fakeResult{
		{result: &CommandResult{Stderr: "no such file", ExitCode: 2}},
	}}

	service := newTestService(func(s *Service) (remoteRunner, error) {
		return runner, nil
	})

	result, err := service.Execute(context.Background(), "ls /missing")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.ExitCode != 2 {
		t.Errorf("expected exit code 2, got %d", result.ExitCode)
	}
}

func TestExecute_ReconnectsOnceOnDisconnect(t *testing.T) {
	dialed := 0

	first := &fakeRunner{results: []fakeResult{
		{err: errors.New("use of closed network connection")},
	}}
	second := &fakeRunner{results: []fakeResult{
		{result: &CommandResult{Stdout: "ok"}},
	}}

	service := newTestService(func(s *Service) (remoteRunner, error) {
		dialed++
		if dialed == 1 {
			return first, nil
		}
		return second, nil
	})

	result, err := service.Execute(context.Background(), "uptime")

	if err != nil {
		t.Fatalf("expected silent reconnect to succeed, got %v", err)
	}

	if result.Stdout != "ok" {
		t.Errorf("expected retried result, got %q", result.Stdout)
	}

	if dialed != 2 {
		t.Errorf("expected exactly 2 dials, got %d", dialed)
	}

	if !first.closed {
		t.Errorf("expected stale runner to be closed")
	}
}

func TestExecute_SecondDisconnectIsSurfaced(t *testing.T) {
	dialed := 0

	service := newTestService(func(s *Service) (remoteRunner, error) {
		dialed++
		return &fakeRunner{results: []fakeResult{
			{err: errors.New("connection reset by peer")},
		}}, nil
	})

	_, err := service.Execute(context.Background(), "uptime")

	if !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}

	if dialed != 2 {
		t.Errorf("expected exactly 2 dials (no further retries), got %d", dialed)
	}
}

func TestExecute_ReconnectFailureIsSurfaced(t *testing.T) {
	dialed := 0

	service := newTestService(func(s *Service) (remoteRunner, error) {
		dialed++
		if dialed == 1 {
			return &fakeRunner{results: []fakeResult{
				{err: errors.New("broken pipe")},
			}}, nil
		}
		return nil, ErrHostUnreachable
	})

	_, err := service.Execute(context.Background(), "uptime")

	if !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}
}

func TestExecute_TimeoutMarksSessionStale(t *testing.T) {
	dialed := 0

	service := newTestService(func(s *Service) (remoteRunner, error) {
		dialed++
		if dialed == 1 {
			return &fakeRunner{block: true}, nil
		}
		return &fakeRunner{}, nil
	})
	service.ExecTimeout = 20 * time.Millisecond

	_, err := service.Execute(context.Background(), "sleep 60")

	if !errors.Is(err, ErrExecTimeout) {
		t.Fatalf("expected ErrExecTimeout, got %v", err)
	}

	if service.Session().Connected {
		t.Errorf("expected session to be marked stale")
	}

	// Next use triggers the single-reconnect policy.
	service.ExecTimeout = time.Second

	if _, err := service.Execute(context.Background(), "echo hi"); err != nil {
		t.Fatalf("expected recovery on next use, got %v", err)
	}

	if dialed != 2 {
		t.Errorf("expected 2 dials, got %d", dialed)
	}
}

func TestExecute_InterruptCancelsLocalWait(t *testing.T) {
	service := newTestService(func(s *Service) (remoteRunner, error) {
		return &fakeRunner{block: true}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := service.Execute(ctx, "sleep 60")

	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
}

func TestConnect_IsIdempotentWhileConnected(t *testing.T) {
	dialed := 0

	service := newTestService(func(s *Service) (remoteRunner, error) {
		dialed++
		return &fakeRunner{}, nil
	})

	if err := service.Connect(); err != nil {
		t.Fatalf("expected connect to succeed, got %v", err)
	}

	sessionID := service.Session().ID

	if err := service.Connect(); err != nil {
		t.Fatalf("expected repeat connect to succeed, got %v", err)
	}

	if dialed != 1 {
		t.Errorf("expected a single dial, got %d", dialed)
	}

	if service.Session().ID != sessionID {
		t.Errorf("expected session identity to be unchanged")
	}
}

func TestClose_Idempotent(t *testing.T) {
	runner := &fakeRunner{}

	service := newTestService(func(s *Service) (remoteRunner, error) {
		return runner, nil
	})

	if err := service.Connect(); err != nil {
		t.Fatalf("expected connect to succeed, got %v", err)
	}

	if err := service.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}

	if err := service.Close(); err != nil {
		t.Fatalf("expected repeat close to be a no-op, got %v", err)
	}

	if !runner.closed {
		t.Errorf("expected runner to be closed")
	}
}
