package client

import "errors"

var (
	// ErrAmbiguousGroup is returned when a group name matches more than one
	// group.
	ErrAmbiguousGroup = errors.New("group name is ambiguous, use the id")

	// ErrNotAdmin is returned by terminal commands that change the vault
	// when no admin credential is active. [App] itself never returns it.
	ErrNotAdmin = errors.New("not logged in as admin")
)
