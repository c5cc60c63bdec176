package translate

import (
	"strings"

	"github.com/aymerick/raymond"
)

// Command templates. Triple-stache keeps raymond from HTML-escaping
// shell text.
var (
	sudoTemplate     = raymond.MustParse(`echo {{{password}}} | {{{payload}}}`)
	installTemplate  = raymond.MustParse(`echo {{{password}}} | sudo -S yum install -y {{{package}}}`)
	removeTemplate   = raymond.MustParse(`echo {{{password}}} | sudo -S yum remove -y {{{package}}}`)
	gitTemplate      = raymond.MustParse(`cd {{{repoPath}}} && {{{payload}}}`)
	sqlProbeTemplate = raymond.MustParse(`echo {{{password}}} | sudo -S mariadb -u root -p -e 'SELECT 1'`)
	sqlQueryTemplate = raymond.MustParse(`echo {{{password}}} | sudo -S mariadb -u root -p -e "USE {{{database}}}; {{{query}}}"`)
	testTemplate     = raymond.MustParse(`cd {{{repoPath}}} && source {{{venvName}}}/bin/activate && python3 -m unittest discover {{{testsPath}}}`)
)

// Service maps a raw input line plus mode context to the concrete
// command string sent to the remote host. Every mapping is pure; an
// empty payload always maps to an empty command, which callers treat
// as a no-op.
type Service struct {
	password string
}

func NewService(password string) *Service {
	return &Service{password: password}
}

// Shell passes the payload through verbatim. A payload starting with
// sudo gets the stored password piped in so -S prompts are satisfied.
func (s *Service) Shell(payload string) string {
	payload = strings.TrimSpace(payload)

	if payload == "" {
		return ""
	}

	if first, _, _ := strings.Cut(payload, " "); first == "sudo" {
		return sudoTemplate.MustExec(map[string]string{
			"password": s.password,
			"payload":  payload,
		})
	}

	return payload
}

// Install builds a yum install for the named package, run as root.
func (s *Service) Install(pkg string) string {
	pkg = strings.TrimSpace(pkg)

	if pkg == "" {
		return ""
	}

	return installTemplate.MustExec(map[string]string{
		"password": s.password,
		"package":  pkg,
	})
}

// Remove builds a yum remove for the named package, run as root.
func (s *Service) Remove(pkg string) string {
	pkg = strings.TrimSpace(pkg)

	if pkg == "" {
		return ""
	}

	return removeTemplate.MustExec(map[string]string{
		"password": s.password,
		"package":  pkg,
	})
}

// Git prefixes the payload with a change into the repository path so
// every command runs with the repository as its working directory.
func (s *Service) Git(repoPath, payload string) string {
	payload = strings.TrimSpace(payload)

	if payload == "" {
		return ""
	}

	return gitTemplate.MustExec(map[string]string{
		"repoPath": strings.TrimSpace(repoPath),
		"payload":  payload,
	})
}

// SQLProbe builds the throwaway statement used to verify that the
// database server on the remote host accepts connections.
func (s *Service) SQLProbe() string {
	return sqlProbeTemplate.MustExec(map[string]string{
		"password": s.password,
	})
}

// SQLQuery builds a client invocation that selects the active database
// and runs one statement.
func (s *Service) SQLQuery(database, query string) string {
	query = strings.TrimSpace(query)

	if query == "" {
		return ""
	}

	return sqlQueryTemplate.MustExec(map[string]string{
		"password": s.password,
		"database": strings.TrimSpace(database),
		"query":    query,
	})
}

// Test builds the fixed action for test mode: activate the virtual
// environment inside the repository and discover unit tests.
func (s *Service) Test(repoPath, venvName, testsPath string) string {
	repoPath = strings.TrimSpace(repoPath)
	venvName = strings.TrimSpace(venvName)
	testsPath = strings.TrimSpace(testsPath)

	if repoPath == "" || venvName == "" || testsPath == "" {
		return ""
	}

	return testTemplate.MustExec(map[string]string{
		"repoPath":  repoPath,
		"venvName":  venvName,
		"testsPath": testsPath,
	})
}
