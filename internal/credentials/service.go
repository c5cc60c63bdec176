package credentials

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Recognized configuration keys.
const (
	KeyPass = "PASS"
	KeyEC2  = "EC2"
	KeyPEM  = "PEM"
)

// Load reads the credential triple from an .env-style file and
// validates it. The returned Credentials are never mutated afterwards.
func Load(path string) (*Credentials, error) {
	values, err := godotenv.Read(path)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotReadable, err)
	}

	for _, key := range []string{KeyPass, KeyEC2, KeyPEM} {
		if strings.TrimSpace(values[key]) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	address := strings.TrimSpace(values[KeyEC2])
	user, host, port, err := parseAddress(address)

	if err != nil {
		return nil, err
	}

	keyPath := strings.TrimSpace(values[KeyPEM])

	if err := checkKeyFile(keyPath); err != nil {
		return nil, err
	}

	return &Credentials{
		Password: values[KeyPass],
		User:     user,
		Host:     host,
		Port:     port,
		KeyPath:  keyPath,
		Address:  address,
	}, nil
}

// parseAddress parses an address in the format user@host or
// user@host:port. Port defaults to 22.
func parseAddress(address string) (user, host string, port uint, err error) {
	port = 22

	if strings.Contains(address, ":") {
		parts := strings.Split(address, ":")
		if len(parts) != 2 {
			return "", "", 0, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
		}

		if portStr := parts[1]; portStr != "" {
			parsedPort, err := strconv.ParseUint(portStr, 10, 32)

			if err != nil || parsedPort > 65535 {
				return "", "", 0, fmt.Errorf("%w: bad port %q", ErrInvalidAddress, portStr)
			}

			port = uint(parsedPort)
		}

		address = parts[0]
	}

	parts := strings.Split(address, "@")

	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", 0, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}

	return parts[0], parts[1], port, nil
}

func checkKeyFile(path string) error {
	info, err := os.Stat(path)

	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrKeyFileNotFound, path)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrKeyFilePermission, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrKeyFileNotFound, path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrKeyFileNotFound, path)
	}

	f, err := os.Open(path)

	if err != nil {
		return fmt.Errorf("%w: %s", ErrKeyFilePermission, path)
	}

	return f.Close()
}
