// SPDX-License-Identifier: Apache-2.0

// Package core defines the service constants and the on-disk layout of a
// Nexus installation. Every other package resolves paths through Layout so
// that tests can point the whole toolchain at a temporary directory.
package core

import "path/filepath"

// Layout resolves well-known files and directories relative to the
// installation directory of the service.
type Layout struct {
	installDir string
}

// NewLayout returns a Layout rooted at installDir. An empty installDir
// resolves to the current working directory.
func NewLayout(installDir string) Layout {
	if installDir == "" {
		installDir = "."
	}

	return Layout{installDir: installDir}
}

func (l Layout) InstallDir() string {
	return l.installDir
}

// EnvFile is the service configuration file.
func (l Layout) EnvFile() string {
	return filepath.Join(l.installDir, EnvFileName)
}

// DataDir holds service state, including the admin credential record.
func (l Layout) DataDir() string {
	return filepath.Join(l.installDir, DataDirName)
}

// UsersFile is the admin credential record.
func (l Layout) UsersFile() string {
	return filepath.Join(l.DataDir(), UsersFileName)
}

// UsersSeedFile is an optional operator-provided seed for the admin record.
func (l Layout) UsersSeedFile() string {
	return filepath.Join(l.installDir, UsersSeedName)
}

// BackupRoot is the parent directory of timestamped backup snapshots.
func (l Layout) BackupRoot() string {
	return filepath.Join(l.installDir, BackupDirName)
}

// LogsDir holds logs written by detached service processes.
func (l Layout) LogsDir() string {
	return filepath.Join(l.installDir, LogsDirName)
}

// ServiceLogFile captures stdout and stderr of a detached service process.
func (l Layout) ServiceLogFile() string {
	return filepath.Join(l.LogsDir(), ServiceLogName)
}

// PidFile records the process id of a detached service process.
func (l Layout) PidFile() string {
	return filepath.Join(l.installDir, PidFileName)
}

// LockFile is the advisory lock taken before any mutating setup stage.
func (l Layout) LockFile() string {
	return filepath.Join(l.installDir, LockFileName)
}

// ManifestFile is the container deployment manifest.
func (l Layout) ManifestFile() string {
	return filepath.Join(l.installDir, ManifestFileName)
}
