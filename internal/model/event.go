package model

import (
	"fmt"
	"strings"
)

// TriggerOrigin tells how a sign-up was initiated.
type TriggerOrigin int

const (
	// OriginNativeSignUp is a plain email/password registration.
	OriginNativeSignUp TriggerOrigin = iota
	// OriginFederatedSignUp is a first sign-in through an external identity provider.
	OriginFederatedSignUp
)

// String returns the origin name used in logs and metrics.
func (o TriggerOrigin) String() string {
	switch o {
	case OriginNativeSignUp:
		return "native"
	case OriginFederatedSignUp:
		return "federated"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Trigger source tags delivered by the directory.
const (
	TriggerSourceSignUp             = "PreSignUp_SignUp"
	TriggerSourceAdminCreateUser    = "PreSignUp_AdminCreateUser"
	TriggerSourceExternalProvider   = "PreSignUp_ExternalProvider"
	TriggerSourcePostAuthentication = "PostAuthentication_Authentication"
)

// ParseTriggerOrigin maps a pre sign-up trigger source tag to an origin.
func ParseTriggerOrigin(source string) (TriggerOrigin, error) {
	switch source {
	case TriggerSourceSignUp, TriggerSourceAdminCreateUser:
		return OriginNativeSignUp, nil
	case TriggerSourceExternalProvider:
		return OriginFederatedSignUp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTriggerSource, source)
	}
}

// IsPreSignUp reports whether the trigger source belongs to the pre sign-up family.
func IsPreSignUp(source string) bool {
	return strings.HasPrefix(source, "PreSignUp_")
}

// IsPostAuthentication reports whether the trigger source belongs to the post
// authentication family.
func IsPostAuthentication(source string) bool {
	return strings.HasPrefix(source, "PostAuthentication_")
}

// SignUpResponse is amended in place by the reconciler. Fields are only ever set to true.
type SignUpResponse struct {
	AutoVerifyEmail bool
	AutoConfirmUser bool
}

// SignUpEvent describes a single sign-up attempt.
type SignUpEvent struct {
	Origin      TriggerOrigin
	DirectoryID string
	// RawIdentifier is meaningful for federated sign-ups only, e.g. "Google_10234".
	RawIdentifier string
	Email         string
	GivenName     string
	FamilyName    string
	Response      *SignUpResponse
}

// AuthenticationEvent describes a successful authentication.
type AuthenticationEvent struct {
	DirectoryID    string
	Username       string
	Attributes     map[string]string
	PendingUpdates []AttributeUpdate
}

// NewSignUpEvent builds a sign-up event from trigger fields. userName carries the
// federated identifier for external-provider sign-ups.
func NewSignUpEvent(source, directoryID, userName string, attributes map[string]string) (*SignUpEvent, error) {
	origin, err := ParseTriggerOrigin(source)
	if err != nil {
		return nil, err
	}

	return &SignUpEvent{
		Origin:        origin,
		DirectoryID:   directoryID,
		RawIdentifier: userName,
		Email:         attributes[string(AttributeEmail)],
		GivenName:     attributes[string(AttributeGivenName)],
		FamilyName:    attributes[string(AttributeFamilyName)],
		Response:      &SignUpResponse{},
	}, nil
}

// PendingAttributes flattens PendingUpdates for transport.
func (e *AuthenticationEvent) PendingAttributes() map[string]string {
	if len(e.PendingUpdates) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.PendingUpdates))
	for _, u := range e.PendingUpdates {
		m[string(u.Key)] = u.Value
	}
	return m
}
