package credentials

// Credentials is the immutable triple loaded from the .env file at
// startup. EC2 is split into User/Host/Port; the raw value is kept for
// display.
type Credentials struct {
	Password string
	User     string
	Host     string
	Port     uint
	KeyPath  string

	// Raw EC2 value as it appeared in the configuration file.
	Address string
}
