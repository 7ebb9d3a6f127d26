// Package identity parses federated sign-up identifiers.
package identity

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtroode/idlink/internal/model"
)

const separator = "_"

// Parse splits raw ("{provider}_{subject}") on the first separator. Only the first
// character of the provider is upper-cased: linking requires "Google", and providers
// with mixed-case names must pass through untouched.
func Parse(raw string) (model.FederatedIdentity, error) {
	provider, subject, ok := strings.Cut(raw, separator)
	if !ok {
		return model.FederatedIdentity{}, fmt.Errorf("%w: no separator in %q", model.ErrMalformedIdentifier, raw)
	}
	if provider == "" || subject == "" {
		return model.FederatedIdentity{}, fmt.Errorf("%w: empty segment in %q", model.ErrMalformedIdentifier, raw)
	}

	return model.FederatedIdentity{
		ProviderName:      capitalizeFirst(provider),
		ProviderSubjectID: subject,
	}, nil
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
