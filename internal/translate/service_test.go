package translate

import "testing"

func TestShell_PassesPayloadThroughVerbatim(t *testing.T) {
	service := NewService("secret")

	if got := service.Shell("ls -l"); got != "ls -l" {
		t.Errorf("expected 'ls -l', got %q", got)
	}
}

func TestShell_PipesPasswordIntoSudo(t *testing.T) {
	service := NewService("secret")

	expected := "echo secret | sudo yum update"

	if got := service.Shell("sudo yum update"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestShell_EmptyPayloadIsNoOp(t *testing.T) {
	service := NewService("secret")

	if got := service.Shell("   "); got != "" {
		t.Errorf("expected empty command, got %q", got)
	}
}

func TestShell_DoesNotEscapeSpecialCharacters(t *testing.T) {
	service := NewService("secret")

	payload := `grep -r "todo" . && echo 'done'`

	if got := service.Shell(payload); got != payload {
		t.Errorf("expected %q, got %q", payload, got)
	}
}

func TestInstall(t *testing.T) {
	service := NewService("secret")

	expected := "echo secret | sudo -S yum install -y docker"

	if got := service.Install("docker"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestRemove(t *testing.T) {
	service := NewService("secret")

	expected := "echo secret | sudo -S yum remove -y docker"

	if got := service.Remove("docker"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestGit_PrefixesDirectoryChange(t *testing.T) {
	service := NewService("secret")

	expected := "cd Documents/repository && git status"

	if got := service.Git("Documents/repository", "git status"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestGit_EmptyPayloadIsNoOp(t *testing.T) {
	service := NewService("secret")

	if got := service.Git("Documents/repository", ""); got != "" {
		t.Errorf("expected empty command, got %q", got)
	}
}

func TestSQLProbe(t *testing.T) {
	service := NewService("secret")

	expected := "echo secret | sudo -S mariadb -u root -p -e 'SELECT 1'"

	if got := service.SQLProbe(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSQLQuery(t *testing.T) {
	service := NewService("secret")

	expected := `echo secret | sudo -S mariadb -u root -p -e "USE mydb; SELECT name FROM Users;"`

	if got := service.SQLQuery("mydb", "SELECT name FROM Users;"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSQLQuery_EmptyStatementIsNoOp(t *testing.T) {
	service := NewService("secret")

	if got := service.SQLQuery("mydb", "  "); got != "" {
		t.Errorf("expected empty command, got %q", got)
	}
}

func TestTest_BuildsFixedAction(t *testing.T) {
	service := NewService("secret")

	expected := "cd Documents/repository && source .venv/bin/activate && python3 -m unittest discover app/tests"

	if got := service.Test("Documents/repository", ".venv", "app/tests"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestTest_MissingContextIsNoOp(t *testing.T) {
	service := NewService("secret")

	if got := service.Test("Documents/repository", "", "app/tests"); got != "" {
		t.Errorf("expected empty command, got %q", got)
	}
}
