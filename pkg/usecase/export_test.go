package usecase

import "time"

// SetSweepClock replaces the clock of the sweep use case for testing
func SetSweepClock(uc *SweepUseCase, now func() time.Time) {
	uc.now = now
}
