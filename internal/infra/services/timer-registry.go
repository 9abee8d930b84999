package services

import (
	"sync"
	"time"
)

// TimerRegistry owns the two per-party timer classes: the inactivity timer
// that closes a quiet conversation, and the escalation timer that forwards a
// completed holerite session to a human. At most one live instance of each
// kind exists per party; arming replaces, never stacks.
type TimerRegistry struct {
	mu         sync.Mutex
	inactivity map[string]*time.Timer
	escalation map[string]*time.Timer
}

func NewTimerRegistry() *TimerRegistry {
	return &TimerRegistry{
		inactivity: make(map[string]*time.Timer),
		escalation: make(map[string]*time.Timer),
	}
}

// ArmInactivity schedules fn after d, replacing any pending inactivity timer
// for the party.
func (r *TimerRegistry) ArmInactivity(waID string, d time.Duration, fn func()) {
	r.arm(r.inactivity, waID, d, fn)
}

// StopInactivity cancels the party's pending inactivity timer. Returns
// whether a pending fire was actually cancelled.
func (r *TimerRegistry) StopInactivity(waID string) bool {
	return r.stop(r.inactivity, waID)
}

// ArmEscalation schedules fn after d, replacing any pending escalation timer
// for the party. Re-arming before the fire is idempotent.
func (r *TimerRegistry) ArmEscalation(waID string, d time.Duration, fn func()) {
	r.arm(r.escalation, waID, d, fn)
}

// StopEscalation cancels the party's pending escalation timer. Returns
// whether a pending fire was actually cancelled.
func (r *TimerRegistry) StopEscalation(waID string) bool {
	return r.stop(r.escalation, waID)
}

func (r *TimerRegistry) arm(class map[string]*time.Timer, waID string, d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := class[waID]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		// Drop the handle before running, but only if it is still ours: the
		// party may have re-armed between the fire and this callback.
		r.mu.Lock()
		if class[waID] == t {
			delete(class, waID)
		}
		r.mu.Unlock()
		fn()
	})
	class[waID] = t
}

func (r *TimerRegistry) stop(class map[string]*time.Timer, waID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := class[waID]
	if !ok {
		return false
	}
	delete(class, waID)
	return t.Stop()
}
