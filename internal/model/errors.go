package model

import "errors"

var (
	// ErrMalformedIdentifier is returned when a federated identifier cannot be split
	// into provider and subject.
	ErrMalformedIdentifier = errors.New("malformed federated identifier")
	// ErrDirectoryUnavailable wraps transport and backend failures of the directory.
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	// ErrUserAlreadyExists is returned when a native account with the same username was
	// created concurrently.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrAlreadyLinked is returned when a federated identity is linked to another account.
	ErrAlreadyLinked = errors.New("federated identity already linked to another user")
	// ErrAmbiguousUser is returned when more than one account claims the same email.
	ErrAmbiguousUser = errors.New("more than one user matches email")
	// ErrUserNotFound is returned when an operation targets a missing account.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownAttribute is returned for attribute keys outside the known set.
	ErrUnknownAttribute = errors.New("unknown user attribute")
	// ErrUnknownTriggerSource is returned for trigger sources the service does not handle.
	ErrUnknownTriggerSource = errors.New("unknown trigger source")
)
