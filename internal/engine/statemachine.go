package engine

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RecoveryBumps holds the due-date extensions applied when a ticket is
// manually moved out of OVERDUE. The values are observed product behavior
// and tunable only through configuration.
type RecoveryBumps struct {
	ReopenDays int // OVERDUE -> OPEN
	ResumeDays int // OVERDUE -> IN_PROGRESS
}

// DefaultRecoveryBumps mirrors the stock rule set: +3 days when reopening,
// +2 days when resuming work.
func DefaultRecoveryBumps() RecoveryBumps {
	return RecoveryBumps{ReopenDays: 3, ResumeDays: 2}
}

// ApplyStatus performs a manual status transition on the ticket. It is a
// total function: every requested transition is carried out, with the
// engine-side effects applied in the same step.
//
//   - Entering DONE stamps CompletedAt once; leaving DONE clears it again so
//     the CompletedAt <=> DONE invariant holds.
//   - Leaving OVERDUE by hand extends the due date (ReopenDays for OPEN,
//     ResumeDays for IN_PROGRESS) so the next automatic sweep does not
//     immediately re-mark the ticket.
//
// The caller must hold the store pass for the whole mutation, including any
// sweep that follows in the same pass.
func ApplyStatus(t *domain.Ticket, next domain.TicketStatus, bumps RecoveryBumps, now time.Time) {
	prev := t.Status
	if prev == next {
		return
	}

	if prev == domain.TicketStatusOverdue {
		switch next {
		case domain.TicketStatusOpen:
			t.DueAt = now.AddDate(0, 0, bumps.ReopenDays)
		case domain.TicketStatusInProgress:
			t.DueAt = now.AddDate(0, 0, bumps.ResumeDays)
		}
	}

	t.Status = next
	if next == domain.TicketStatusDone {
		if t.CompletedAt == nil {
			completed := now
			t.CompletedAt = &completed
		}
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
}

// MarkEmergency flags the ticket and, while it is OPEN or IN_PROGRESS,
// escalates it straight to OVERDUE. Emergencies are modeled as
// pre-escalated rather than waiting for the date check. DONE tickets only
// get the flag.
func MarkEmergency(t *domain.Ticket, now time.Time) {
	t.IsEmergency = true
	if t.Status == domain.TicketStatusOpen || t.Status == domain.TicketStatusInProgress {
		t.Status = domain.TicketStatusOverdue
	}
	t.UpdatedAt = now
}

// SweepTicket applies the automatic overdue rules to a single ticket and
// reports whether the status changed:
//
//   - any non-DONE, non-OVERDUE ticket whose due date is strictly past
//     becomes OVERDUE;
//   - an OVERDUE ticket whose due date is no longer past returns to
//     IN_PROGRESS (overdue work is assumed to already be underway).
//     Emergency tickets are pre-escalated and stay OVERDUE regardless of
//     their due date.
//
// A ticket with no usable due date is excluded from the check. The function
// is idempotent: a second sweep at the same instant changes nothing.
func SweepTicket(t *domain.Ticket, now time.Time) bool {
	if t.Status == domain.TicketStatusDone || t.DueAt.IsZero() {
		return false
	}
	overdue := t.DueAt.Before(now)
	switch {
	case overdue && t.Status != domain.TicketStatusOverdue:
		t.Status = domain.TicketStatusOverdue
		t.UpdatedAt = now
		return true
	case !overdue && t.Status == domain.TicketStatusOverdue && !t.IsEmergency:
		t.Status = domain.TicketStatusInProgress
		t.UpdatedAt = now
		return true
	}
	return false
}
