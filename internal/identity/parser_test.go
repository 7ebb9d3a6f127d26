package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idlink/internal/model"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    model.FederatedIdentity
		wantErr error
	}{
		{
			name: "lower-case provider",
			raw:  "google_10234",
			want: model.FederatedIdentity{ProviderName: "Google", ProviderSubjectID: "10234"},
		},
		{
			name: "already capitalized",
			raw:  "Google_10234",
			want: model.FederatedIdentity{ProviderName: "Google", ProviderSubjectID: "10234"},
		},
		{
			name: "upper-case provider untouched",
			raw:  "GOOGLE_10234",
			want: model.FederatedIdentity{ProviderName: "GOOGLE", ProviderSubjectID: "10234"},
		},
		{
			name: "mixed case keeps tail",
			raw:  "signInWithApple_abc",
			want: model.FederatedIdentity{ProviderName: "SignInWithApple", ProviderSubjectID: "abc"},
		},
		{
			name: "splits on first separator only",
			raw:  "oidc_tenant_42",
			want: model.FederatedIdentity{ProviderName: "Oidc", ProviderSubjectID: "tenant_42"},
		},
		{
			name:    "no separator",
			raw:     "google10234",
			wantErr: model.ErrMalformedIdentifier,
		},
		{
			name:    "empty provider",
			raw:     "_10234",
			wantErr: model.ErrMalformedIdentifier,
		},
		{
			name:    "empty subject",
			raw:     "google_",
			wantErr: model.ErrMalformedIdentifier,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: model.ErrMalformedIdentifier,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_FirstLetterOnly(t *testing.T) {
	providers := []string{"google", "facebook", "loginWithAmazon", "x", "Okta", "aBCD"}
	subjects := []string{"1", "10234", "abcDEF123", "0000000000000000000"}

	for _, p := range providers {
		for _, s := range subjects {
			got, err := Parse(p + "_" + s)
			require.NoError(t, err)

			assert.Equal(t, strings.ToUpper(p[:1])+p[1:], got.ProviderName)
			assert.Equal(t, s, got.ProviderSubjectID)
		}
	}
}
