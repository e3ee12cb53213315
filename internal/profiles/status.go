package profiles

import "errors"

// Status is the verification state of a profile.
//
// The lifecycle is details_pending -> under_review -> verified | rejected.
// A verified profile can be banned or suspended, and a banned or suspended
// profile can be reactivated back to verified. rejected is terminal.
type Status string

const (
	StatusDetailsPending Status = "details_pending"
	StatusUnderReview    Status = "under_review"
	StatusVerified       Status = "verified"
	StatusRejected       Status = "rejected"
	StatusBanned         Status = "banned"
	StatusSuspended      Status = "suspended"
)

// Action is an admin restriction applied to a verified profile.
type Action string

const (
	ActionBan     Action = "ban"
	ActionSuspend Action = "suspend"
)

var (
	// ErrUnknownStatus rejects a status string outside the recognized set
	// before any write happens.
	ErrUnknownStatus = errors.New("invalid status")
	// ErrUnknownAction rejects an action other than ban or suspend.
	ErrUnknownAction = errors.New("invalid action")
	// ErrNotVerified guards restrictions: only verified profiles can be
	// banned or suspended.
	ErrNotVerified = errors.New("only verified profiles can be banned or suspended")
	// ErrNotFound is returned when the referenced profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrIncomplete is returned when finalizing a setup form with required
	// fields missing.
	ErrIncomplete = errors.New("profile details incomplete")
)

var validStatuses = map[Status]bool{
	StatusDetailsPending: true,
	StatusUnderReview:    true,
	StatusVerified:       true,
	StatusRejected:       true,
	StatusBanned:         true,
	StatusSuspended:      true,
}

// ParseStatus returns the closed Status for s, or ErrUnknownStatus.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", ErrUnknownStatus
	}
	return st, nil
}

// DirectlySettable reports whether an admin may write this status through the
// status endpoint. banned and suspended are reachable only through the
// restriction action endpoint, which enforces the verified-only guard.
func (s Status) DirectlySettable() bool {
	return s != StatusBanned && s != StatusSuspended
}

// Restricted reports whether the status is a restriction state.
func (s Status) Restricted() bool {
	return s == StatusBanned || s == StatusSuspended
}

// ParseAction returns the closed Action for s, or ErrUnknownAction.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBan, ActionSuspend:
		return Action(s), nil
	}
	return "", ErrUnknownAction
}

// Status returns the profile status an action moves to.
func (a Action) Status() Status {
	if a == ActionBan {
		return StatusBanned
	}
	return StatusSuspended
}
