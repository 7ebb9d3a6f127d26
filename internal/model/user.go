package model

import "context"

// Directory is the administrative API of the external user directory.
// All operations are scoped to a single directory (user pool).
type Directory interface {
	// FindByEmail returns the account claiming email. The boolean is false when no
	// account exists; ErrAmbiguousUser is returned for more than one match.
	FindByEmail(ctx context.Context, directoryID, email string) (DirectoryUser, bool, error)
	// CreateNativeUser creates an account whose username is the email, with the email
	// pre-verified and user notifications suppressed.
	CreateNativeUser(ctx context.Context, directoryID string, profile NativeProfile) (DirectoryUser, error)
	SetPermanentPassword(ctx context.Context, directoryID, username, secret string) error
	// LinkFederatedIdentity associates identity with the native account. Linking a pair
	// already owned by the same account succeeds.
	LinkFederatedIdentity(ctx context.Context, directoryID, username string, identity FederatedIdentity) error
	UpdateAttributes(ctx context.Context, directoryID, username string, updates ...AttributeUpdate) error
}

// DirectoryUser is a native account record owned by the directory.
type DirectoryUser struct {
	Username   string
	Email      string
	Attributes map[string]string
}

// NativeProfile holds the attributes of an account provisioned for a federated sign-up.
type NativeProfile struct {
	Email      string
	GivenName  string
	FamilyName string
}

// Attributes returns the initial attribute set of the provisioned account.
func (p NativeProfile) Attributes() []AttributeUpdate {
	return []AttributeUpdate{
		GivenName(p.GivenName),
		FamilyName(p.FamilyName),
		Email(p.Email),
		EmailVerified(true),
	}
}
