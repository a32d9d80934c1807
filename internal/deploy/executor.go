// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/automa-saga/logx"
)

// livenessGrace is how long a detached process gets to crash before it is
// declared up.
const livenessGrace = 3 * time.Second

// Attempt is one entry in the deployment transcript.
type Attempt struct {
	Mechanism Mechanism
	Number    int
	Err       error
}

// Executor brings the service up with bounded retries and at most one
// fallback per direction between mechanisms.
type Executor struct {
	svc      *Service
	prompter confirmer

	attempts     []Attempt
	fallbackUsed map[Mechanism]bool
}

// confirmer is the slice of prompt.Prompter the executor needs.
type confirmer interface {
	Confirm(title string, def bool) (bool, error)
}

func NewExecutor(svc *Service, prompter confirmer) *Executor {
	return &Executor{
		svc:          svc,
		prompter:     prompter,
		fallbackUsed: map[Mechanism]bool{},
	}
}

// Attempts returns the transcript of every deployment attempt so far.
func (e *Executor) Attempts() []Attempt {
	return e.attempts
}

// Deploy brings the service up starting with the given mechanism. Each
// mechanism gets up to three attempts; when one is exhausted the operator
// may switch to the other, once per direction.
func (e *Executor) Deploy(ctx context.Context, initial Mechanism) error {
	mech := initial

	for {
		err := e.tryMechanism(ctx, mech)
		if err == nil {
			return nil
		}

		if IsFatal(err) || e.fallbackUsed[mech] {
			return err
		}

		other := mech.Other()

		fallback, perr := e.prompter.Confirm(
			fmt.Sprintf("Deployment via %s failed. Try the %s mechanism instead?", mech, other), true)
		if perr != nil {
			return perr
		}

		if !fallback {
			return err
		}

		e.fallbackUsed[mech] = true
		mech = other
	}
}

func (e *Executor) tryMechanism(ctx context.Context, mech Mechanism) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logx.As().Info().
			Str("mechanism", string(mech)).
			Int("attempt", attempt).
			Msg("Deploying service")

		lastErr = e.svc.Start(ctx, mech)
		e.attempts = append(e.attempts, Attempt{Mechanism: mech, Number: attempt, Err: lastErr})

		if lastErr == nil {
			logx.As().Info().Str("mechanism", string(mech)).Msg("Service deployed")

			return nil
		}

		if IsFatal(lastErr) {
			return lastErr
		}

		logx.As().Warn().Err(lastErr).
			Str("mechanism", string(mech)).
			Int("attempt", attempt).
			Msg("Deployment attempt failed")
	}

	return lastErr
}
