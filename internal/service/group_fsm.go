package service

import (
	"fmt"

	"github.com/MKhiriev/group-vault/models"
)

// GroupFSM is the unlock state of one group within a session.
//
//	pending ──▶ decrypting ──▶ success
//	   ▲             │
//	   └── failed ◀──┘
//
// success is terminal for the session. failed may go back to pending or
// straight to decrypting on a later batch.
type GroupFSM struct {
	state models.GroupStatus
}

// NewGroupFSM returns a machine in the pending state.
func NewGroupFSM() *GroupFSM {
	return &GroupFSM{state: models.StatusPending}
}

// State returns the current status.
func (f *GroupFSM) State() models.GroupStatus {
	return f.state
}

// Transition moves the machine to next or returns [ErrInvalidTransition].
func (f *GroupFSM) Transition(next models.GroupStatus) error {
	if !canTransition(f.state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.state, next)
	}
	f.state = next
	return nil
}

func canTransition(from, to models.GroupStatus) bool {
	switch from {
	case models.StatusPending:
		return to == models.StatusPending || to == models.StatusDecrypting
	case models.StatusDecrypting:
		return to == models.StatusSuccess || to == models.StatusFailed
	case models.StatusFailed:
		return to == models.StatusPending || to == models.StatusDecrypting
	}
	return false
}
