package profiles

import "time"

// ModeProfile remembers the answers a user gave to a mode's one-time
// prompts, keyed by remote host and mode. Used only to offer defaults
// on the next visit; executed commands are never stored.
type ModeProfile struct {
	ID        uint   `gorm:"primaryKey"`
	Host      string `gorm:"type:text;not null;uniqueIndex:idx_host_mode"`
	Mode      string `gorm:"type:text;not null;uniqueIndex:idx_host_mode"`
	RepoPath  string `gorm:"type:text"`
	Database  string `gorm:"type:text"`
	VenvName  string `gorm:"type:text"`
	TestsPath string `gorm:"type:text"`
	UpdatedAt time.Time
}
