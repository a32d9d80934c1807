// SPDX-License-Identifier: Apache-2.0

package core

const (
	// ServiceName is the display name of the managed service.
	ServiceName = "Nexus"

	// DefaultServicePort is the port the service listens on unless the
	// environment file overrides it.
	DefaultServicePort = 3010
)

const (
	EnvFileName      = ".env"
	DataDirName      = "data"
	UsersFileName    = "users.json"
	UsersSeedName    = "users.example.json"
	BackupDirName    = "backup"
	LogsDirName      = "logs"
	ServiceLogName   = "nexus.log"
	PidFileName      = "nexus.pid"
	LockFileName     = "nexusctl.lock"
	ManifestFileName = "docker-compose.yml"
)

// BackupStampLayout is the time layout for backup directory names.
const BackupStampLayout = "20060102-150405"

const DefaultDirMode = 0755
const DefaultFileMode = 0644
