package version

// Set at build time via -ldflags.
var (
	Version = "1.0.0"
	Commit  = "dev"
	Date    = "unknown"
)

const Website = "https://github.com/Taghunter98/wcli.git"
