package model

// Action is the mutation performed by a trigger invocation.
type Action string

const (
	ActionNone           Action = "none"
	ActionLinkedExisting Action = "linked_existing"
	ActionProvisioned    Action = "provisioned"
	ActionEmailVerified  Action = "email_verified"
)

// Outcome reports what a trigger invocation did.
type Outcome struct {
	Action   Action
	Username string
	Identity FederatedIdentity
}
