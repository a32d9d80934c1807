// SPDX-License-Identifier: Apache-2.0

package setup

// HoldLock stores an acquired lock on the state so the command driving the
// pipeline can release it when the run ends.
func (s *PipelineState) HoldLock(l *Lock) {
	s.lock = l
}

// ReleaseLock drops the lock if one is held. Safe to call when no lock was
// ever acquired.
func (s *PipelineState) ReleaseLock() error {
	if s.lock == nil {
		return nil
	}

	err := s.lock.Release()
	s.lock = nil

	return err
}
