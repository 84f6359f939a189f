package service

import (
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
)

const (
	maxFailedLogins = 3
	lockoutWindow   = 15 * time.Minute
)

// lockoutState is the lockout machine of one account, detached from storage
// so the transitions stay pure.
type lockoutState struct {
	FailedAttempts int
	LockoutEnd     *time.Time
}

func lockoutOf(u *model.User) lockoutState {
	return lockoutState{FailedAttempts: u.FailedLoginAttempts, LockoutEnd: u.LockoutEnd}
}

// Locked reports whether the account is still inside a lockout window.
func (s lockoutState) Locked(now time.Time) bool {
	return s.LockoutEnd != nil && now.Before(*s.LockoutEnd)
}

// Failure records one failed password attempt. The counter keeps growing
// across lockouts; once it is at the limit, every further failure restarts
// the window immediately. Only a correct password clears it.
func (s lockoutState) Failure(now time.Time) lockoutState {
	s.FailedAttempts++
	if s.FailedAttempts >= maxFailedLogins {
		end := now.Add(lockoutWindow)
		s.LockoutEnd = &end
	}
	return s
}

// Success clears the counters after a correct password.
func (s lockoutState) Success() lockoutState {
	return lockoutState{}
}

func (s lockoutState) applyTo(u *model.User) {
	u.FailedLoginAttempts = s.FailedAttempts
	u.LockoutEnd = s.LockoutEnd
}
