// SPDX-License-Identifier: Apache-2.0

// Package deploy installs service dependencies and brings the service up
// through one of two mechanisms: a docker compose stack or a detached npm
// process. Failed deployments are retried a bounded number of times and may
// fall back to the other mechanism once per direction.
package deploy

import "github.com/joomcode/errorx"

// Mechanism selects how the service is brought up.
type Mechanism string

const (
	// MechanismDocker runs the service as a docker compose stack.
	MechanismDocker Mechanism = "docker"

	// MechanismProcess runs the service as a detached npm process.
	MechanismProcess Mechanism = "process"
)

// Other returns the alternative mechanism.
func (m Mechanism) Other() Mechanism {
	if m == MechanismDocker {
		return MechanismProcess
	}

	return MechanismDocker
}

// ParseMechanism validates a mechanism name.
func ParseMechanism(s string) (Mechanism, error) {
	switch Mechanism(s) {
	case MechanismDocker:
		return MechanismDocker, nil
	case MechanismProcess:
		return MechanismProcess, nil
	default:
		return "", errorx.IllegalArgument.New("unknown deployment mechanism: %s", s)
	}
}

var (
	deployErrors = errorx.NewNamespace("deploy")

	// TraitFatal marks failures that no retry or fallback can fix.
	TraitFatal = errorx.RegisterTrait("fatal")

	// ErrManifestMissing means the compose manifest is absent. Retrying
	// cannot create it, so the error is fatal.
	ErrManifestMissing = deployErrors.NewType("manifest_missing", TraitFatal)

	// ErrServiceDied means a detached service process exited during the
	// liveness grace period.
	ErrServiceDied = deployErrors.NewType("service_died")
)

// IsFatal reports whether err must abort deployment without retry.
func IsFatal(err error) bool {
	return errorx.HasTrait(err, TraitFatal)
}
