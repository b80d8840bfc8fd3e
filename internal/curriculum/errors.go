package curriculum

import "errors"

// Precondition errors. The surface gates actions on Session.Gates(), so
// under normal operation these are unreachable; they exist so a buggy
// caller fails loudly instead of corrupting session state.
var (
	ErrNoDraft          = errors.New("no draft profile: run calibration first")
	ErrDraftIncomplete  = errors.New("draft profile has empty fields")
	ErrProfileLocked    = errors.New("profile is locked for this session")
	ErrProfileNotLocked = errors.New("profile must be locked first")
	ErrPlanExists       = errors.New("year plan already exists: reset it first")
	ErrNoPlan           = errors.New("no year plan: generate the skeleton first")
	ErrWeekNotFound     = errors.New("week not present in the year plan")
)
