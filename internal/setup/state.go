// SPDX-License-Identifier: Apache-2.0

// Package setup carries the shared state of the interactive setup pipeline.
// The workflow steps close over one PipelineState, each stage reading what
// earlier stages produced.
package setup

import (
	"github.com/cursor-nexus/nexusctl/internal/admin"
	"github.com/cursor-nexus/nexusctl/internal/backup"
	"github.com/cursor-nexus/nexusctl/internal/credentials"
	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/envfile"
	"github.com/cursor-nexus/nexusctl/internal/prereq"
)

// PipelineState accumulates the outcome of each setup stage.
type PipelineState struct {
	// Prereqs is the tool probe transcript.
	Prereqs []prereq.Status

	// Env is the service configuration being assembled.
	Env *envfile.Document

	// Backup is the pre-mutation snapshot, nil until taken.
	Backup *backup.Snapshot

	// Credentials are the collected API key and tokens.
	Credentials *credentials.Credentials

	// Admin is the configured admin record.
	Admin *admin.Record

	// AdminWritten reports whether the admin stage wrote the record or
	// kept an existing one.
	AdminWritten bool

	// Mechanism is the deployment mechanism chosen by the operator.
	Mechanism deploy.Mechanism

	// DockerAvailable mirrors the prereq probe for mechanism selection.
	DockerAvailable bool

	lock *Lock
}

// HasPrereq reports whether the named tool was found during the check stage.
func (s *PipelineState) HasPrereq(name string) bool {
	for _, st := range s.Prereqs {
		if st.Tool.Name == name && st.Found {
			return true
		}
	}

	return false
}
