package model

import (
	"fmt"
	"strconv"
)

// AttributeKey names a user attribute the service is allowed to write.
type AttributeKey string

const (
	AttributeEmail         AttributeKey = "email"
	AttributeEmailVerified AttributeKey = "email_verified"
	AttributeGivenName     AttributeKey = "given_name"
	AttributeFamilyName    AttributeKey = "family_name"
)

var knownAttributes = map[AttributeKey]struct{}{
	AttributeEmail:         {},
	AttributeEmailVerified: {},
	AttributeGivenName:     {},
	AttributeFamilyName:    {},
}

// ParseAttributeKey validates a raw attribute name.
func ParseAttributeKey(name string) (AttributeKey, error) {
	key := AttributeKey(name)
	if err := key.Validate(); err != nil {
		return "", err
	}
	return key, nil
}

// Validate returns ErrUnknownAttribute for keys outside the known set.
func (k AttributeKey) Validate() error {
	if _, ok := knownAttributes[k]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, string(k))
	}
	return nil
}

// AttributeUpdate overwrites a single attribute.
type AttributeUpdate struct {
	Key   AttributeKey
	Value string
}

// EmailVerified builds an email_verified update.
func EmailVerified(verified bool) AttributeUpdate {
	return AttributeUpdate{Key: AttributeEmailVerified, Value: strconv.FormatBool(verified)}
}

// Email builds an email update.
func Email(email string) AttributeUpdate {
	return AttributeUpdate{Key: AttributeEmail, Value: email}
}

// GivenName builds a given_name update.
func GivenName(name string) AttributeUpdate {
	return AttributeUpdate{Key: AttributeGivenName, Value: name}
}

// FamilyName builds a family_name update.
func FamilyName(name string) AttributeUpdate {
	return AttributeUpdate{Key: AttributeFamilyName, Value: name}
}

// ValidateUpdates checks every key of the given updates.
func ValidateUpdates(updates []AttributeUpdate) error {
	for _, u := range updates {
		if err := u.Key.Validate(); err != nil {
			return err
		}
	}
	return nil
}
