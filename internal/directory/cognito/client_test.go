package cognito

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idlink/internal/model"
)

const poolID = "eu-west-1_pool"

// fakeCognito implements API for testing without network.
type fakeCognito struct {
	listOut *cip.ListUsersOutput
	listErr error
	listIn  *cip.ListUsersInput

	getOut *cip.AdminGetUserOutput
	getErr error

	createOut *cip.AdminCreateUserOutput
	createErr error
	createIn  *cip.AdminCreateUserInput

	setPasswordErr error
	setPasswordIn  *cip.AdminSetUserPasswordInput

	linkErr error
	linkIn  *cip.AdminLinkProviderForUserInput

	updateErr error
	updateIn  *cip.AdminUpdateUserAttributesInput
}

func (f *fakeCognito) ListUsers(_ context.Context, in *cip.ListUsersInput, _ ...func(*cip.Options)) (*cip.ListUsersOutput, error) {
	f.listIn = in
	return f.listOut, f.listErr
}

func (f *fakeCognito) AdminGetUser(_ context.Context, _ *cip.AdminGetUserInput, _ ...func(*cip.Options)) (*cip.AdminGetUserOutput, error) {
	return f.getOut, f.getErr
}

func (f *fakeCognito) AdminCreateUser(_ context.Context, in *cip.AdminCreateUserInput, _ ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error) {
	f.createIn = in
	return f.createOut, f.createErr
}

func (f *fakeCognito) AdminSetUserPassword(_ context.Context, in *cip.AdminSetUserPasswordInput, _ ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error) {
	f.setPasswordIn = in
	return &cip.AdminSetUserPasswordOutput{}, f.setPasswordErr
}

func (f *fakeCognito) AdminLinkProviderForUser(_ context.Context, in *cip.AdminLinkProviderForUserInput, _ ...func(*cip.Options)) (*cip.AdminLinkProviderForUserOutput, error) {
	f.linkIn = in
	return &cip.AdminLinkProviderForUserOutput{}, f.linkErr
}

func (f *fakeCognito) AdminUpdateUserAttributes(_ context.Context, in *cip.AdminUpdateUserAttributesInput, _ ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error) {
	f.updateIn = in
	return &cip.AdminUpdateUserAttributesOutput{}, f.updateErr
}

func attr(name, value string) types.AttributeType {
	return types.AttributeType{Name: aws.String(name), Value: aws.String(value)}
}

var google10234 = model.FederatedIdentity{ProviderName: "Google", ProviderSubjectID: "10234"}

func TestClient_FindByEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		out       *cip.ListUsersOutput
		err       error
		wantFound bool
		wantUser  model.DirectoryUser
		wantErr   error
	}{
		{
			name: "no match",
			out:  &cip.ListUsersOutput{},
		},
		{
			name: "single match",
			out: &cip.ListUsersOutput{Users: []types.UserType{
				{Username: aws.String("u1"), Attributes: []types.AttributeType{attr("email", "a@x.com"), attr("email_verified", "true")}},
			}},
			wantFound: true,
			wantUser: model.DirectoryUser{
				Username:   "u1",
				Email:      "a@x.com",
				Attributes: map[string]string{"email": "a@x.com", "email_verified": "true"},
			},
		},
		{
			name: "two matches",
			out: &cip.ListUsersOutput{Users: []types.UserType{
				{Username: aws.String("u1")},
				{Username: aws.String("u2")},
			}},
			wantErr: model.ErrAmbiguousUser,
		},
		{
			name:    "throttled",
			err:     &smithy.GenericAPIError{Code: "TooManyRequestsException", Message: "slow down"},
			wantErr: model.ErrDirectoryUnavailable,
		},
		{
			name:    "transport",
			err:     errors.New("dial tcp: i/o timeout"),
			wantErr: model.ErrDirectoryUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &fakeCognito{listOut: tt.out, listErr: tt.err}
			c := NewWithAPI(api)

			user, found, err := c.FindByEmail(context.Background(), poolID, "a@x.com")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantUser, user)
			}
			assert.Equal(t, poolID, aws.ToString(api.listIn.UserPoolId))
			assert.Equal(t, `email = "a@x.com"`, aws.ToString(api.listIn.Filter))
			assert.Equal(t, int32(2), aws.ToInt32(api.listIn.Limit))
		})
	}
}

func TestEmailFilter_Escapes(t *testing.T) {
	assert.Equal(t, `email = "a\"b@x.com"`, emailFilter(`a"b@x.com`))
	assert.Equal(t, `email = "a\\b@x.com"`, emailFilter(`a\b@x.com`))
}

func TestClient_CreateNativeUser(t *testing.T) {
	api := &fakeCognito{createOut: &cip.AdminCreateUserOutput{User: &types.UserType{
		Username:   aws.String("a@x.com"),
		Attributes: []types.AttributeType{attr("email", "a@x.com")},
	}}}
	c := NewWithAPI(api)

	user, err := c.CreateNativeUser(context.Background(), poolID, model.NativeProfile{Email: "a@x.com", GivenName: "Ada", FamilyName: "Lovelace"})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", user.Username)
	assert.Equal(t, "a@x.com", aws.ToString(api.createIn.Username))
	assert.Equal(t, types.MessageActionTypeSuppress, api.createIn.MessageAction)
	assert.Equal(t, map[string]string{
		"given_name":     "Ada",
		"family_name":    "Lovelace",
		"email":          "a@x.com",
		"email_verified": "true",
	}, attributeMap(api.createIn.UserAttributes))
}

func TestClient_CreateNativeUser_NoUserInResponse(t *testing.T) {
	c := NewWithAPI(&fakeCognito{createOut: &cip.AdminCreateUserOutput{}})

	user, err := c.CreateNativeUser(context.Background(), poolID, model.NativeProfile{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Username)
	assert.Equal(t, "true", user.Attributes["email_verified"])
}

func TestClient_CreateNativeUser_Exists(t *testing.T) {
	c := NewWithAPI(&fakeCognito{createErr: &types.UsernameExistsException{Message: aws.String("exists")}})

	_, err := c.CreateNativeUser(context.Background(), poolID, model.NativeProfile{Email: "a@x.com"})
	require.ErrorIs(t, err, model.ErrUserAlreadyExists)
	assert.NotErrorIs(t, err, model.ErrDirectoryUnavailable)
}

func TestClient_SetPermanentPassword(t *testing.T) {
	api := &fakeCognito{}
	c := NewWithAPI(api)

	require.NoError(t, c.SetPermanentPassword(context.Background(), poolID, "u1", "Secret123!"))
	assert.True(t, api.setPasswordIn.Permanent)
	assert.Equal(t, "Secret123!", aws.ToString(api.setPasswordIn.Password))
	assert.Equal(t, "u1", aws.ToString(api.setPasswordIn.Username))

	api.setPasswordErr = &types.UserNotFoundException{Message: aws.String("gone")}
	err := c.SetPermanentPassword(context.Background(), poolID, "u1", "Secret123!")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestClient_LinkFederatedIdentity(t *testing.T) {
	t.Parallel()

	rejected := &types.InvalidParameterException{Message: aws.String("Merging is not currently supported")}
	identities := func(raw string) *cip.AdminGetUserOutput {
		return &cip.AdminGetUserOutput{UserAttributes: []types.AttributeType{attr("identities", raw)}}
	}

	tests := []struct {
		name    string
		linkErr error
		getOut  *cip.AdminGetUserOutput
		getErr  error
		wantErr error
		anyErr  bool
		notErr  []error
	}{
		{
			name: "linked",
		},
		{
			name:    "already linked to same user",
			linkErr: rejected,
			getOut:  identities(`[{"userId":"10234","providerName":"Google","providerType":"Google","primary":false}]`),
		},
		{
			name:    "linked to another user",
			linkErr: rejected,
			getOut:  identities(`[{"userId":"999","providerName":"Google"}]`),
			wantErr: model.ErrAlreadyLinked,
		},
		{
			name:    "destination has no identities",
			linkErr: &types.AliasExistsException{Message: aws.String("alias")},
			getOut:  &cip.AdminGetUserOutput{},
			wantErr: model.ErrAlreadyLinked,
		},
		{
			name:    "lookup after rejection fails",
			linkErr: rejected,
			getErr:  errors.New("connection reset"),
			wantErr: model.ErrDirectoryUnavailable,
		},
		{
			name:    "corrupt identities",
			linkErr: rejected,
			getOut:  identities(`not json`),
			anyErr:  true,
		},
		{
			name:    "already linked message",
			linkErr: &types.InvalidParameterException{Message: aws.String("Source user is already linked to another user")},
			getOut:  &cip.AdminGetUserOutput{},
			wantErr: model.ErrAlreadyLinked,
		},
		{
			name:    "unknown provider is not a conflict",
			linkErr: &types.InvalidParameterException{Message: aws.String("Provider GOOGLE does not exist for User Pool eu-west-1_pool")},
			getOut:  &cip.AdminGetUserOutput{},
			anyErr:  true,
			notErr:  []error{model.ErrAlreadyLinked, model.ErrDirectoryUnavailable},
		},
		{
			name:    "backend failure",
			linkErr: &smithy.GenericAPIError{Code: "InternalErrorException"},
			wantErr: model.ErrDirectoryUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &fakeCognito{linkErr: tt.linkErr, getOut: tt.getOut, getErr: tt.getErr}
			c := NewWithAPI(api)

			err := c.LinkFederatedIdentity(context.Background(), poolID, "u1", google10234)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
			for _, e := range tt.notErr {
				assert.NotErrorIs(t, err, e)
			}

			assert.Equal(t, "Cognito", aws.ToString(api.linkIn.DestinationUser.ProviderName))
			assert.Equal(t, "u1", aws.ToString(api.linkIn.DestinationUser.ProviderAttributeValue))
			assert.Equal(t, "Google", aws.ToString(api.linkIn.SourceUser.ProviderName))
			assert.Equal(t, "Cognito_Subject", aws.ToString(api.linkIn.SourceUser.ProviderAttributeName))
			assert.Equal(t, "10234", aws.ToString(api.linkIn.SourceUser.ProviderAttributeValue))
		})
	}
}

func TestClient_UpdateAttributes(t *testing.T) {
	api := &fakeCognito{}
	c := NewWithAPI(api)

	require.NoError(t, c.UpdateAttributes(context.Background(), poolID, "u1", model.EmailVerified(true)))
	assert.Equal(t, map[string]string{"email_verified": "true"}, attributeMap(api.updateIn.UserAttributes))

	api.updateIn = nil
	err := c.UpdateAttributes(context.Background(), poolID, "u1", model.AttributeUpdate{Key: "email_verifed", Value: "true"})
	require.ErrorIs(t, err, model.ErrUnknownAttribute)
	assert.Nil(t, api.updateIn)

	api.updateErr = errors.New("boom")
	err = c.UpdateAttributes(context.Background(), poolID, "u1", model.EmailVerified(true))
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
}
