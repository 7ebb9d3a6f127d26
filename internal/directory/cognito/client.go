// Package cognito implements model.Directory on top of the Cognito user pool
// administrative API.
package cognito

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	"github.com/dtroode/idlink/internal/model"
)

const (
	// nativeProviderName identifies the user pool itself as link destination.
	nativeProviderName = "Cognito"
	// subjectAttributeName tells Cognito the source value is the provider subject.
	subjectAttributeName = "Cognito_Subject"
	// identitiesAttribute holds the JSON list of identities linked to a user.
	identitiesAttribute = "identities"
)

// API is the subset of the Cognito client used by the directory.
type API interface {
	ListUsers(ctx context.Context, params *cip.ListUsersInput, optFns ...func(*cip.Options)) (*cip.ListUsersOutput, error)
	AdminGetUser(ctx context.Context, params *cip.AdminGetUserInput, optFns ...func(*cip.Options)) (*cip.AdminGetUserOutput, error)
	AdminCreateUser(ctx context.Context, params *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	AdminLinkProviderForUser(ctx context.Context, params *cip.AdminLinkProviderForUserInput, optFns ...func(*cip.Options)) (*cip.AdminLinkProviderForUserOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cip.AdminUpdateUserAttributesInput, optFns ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error)
}

var _ model.Directory = (*Client)(nil)

// Client is a Cognito-backed directory. It is safe for concurrent use and meant to be
// created once per process.
type Client struct {
	api API
}

// NewFromConfig creates a Client from an AWS config. A non-empty endpoint overrides
// the service endpoint (e.g. LocalStack).
func NewFromConfig(cfg aws.Config, endpoint string) *Client {
	return NewWithAPI(cip.NewFromConfig(cfg, func(o *cip.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}))
}

// NewWithAPI allows injecting a mockable API (used in tests).
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// FindByEmail lists at most two users matching email; two matches are reported as
// ErrAmbiguousUser instead of picking one.
func (c *Client) FindByEmail(ctx context.Context, directoryID, email string) (model.DirectoryUser, bool, error) {
	out, err := c.api.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(directoryID),
		Filter:     aws.String(emailFilter(email)),
		Limit:      aws.Int32(2),
	})
	if err != nil {
		return model.DirectoryUser{}, false, mapError("list users", err)
	}

	switch len(out.Users) {
	case 0:
		return model.DirectoryUser{}, false, nil
	case 1:
		return toDirectoryUser(out.Users[0].Username, out.Users[0].Attributes), true, nil
	default:
		return model.DirectoryUser{}, false, fmt.Errorf("%w: %s", model.ErrAmbiguousUser, email)
	}
}

// CreateNativeUser creates a user named after its email with notifications suppressed.
func (c *Client) CreateNativeUser(ctx context.Context, directoryID string, profile model.NativeProfile) (model.DirectoryUser, error) {
	out, err := c.api.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId:     aws.String(directoryID),
		Username:       aws.String(profile.Email),
		MessageAction:  types.MessageActionTypeSuppress,
		UserAttributes: toAttributeTypes(profile.Attributes()),
	})
	if err != nil {
		return model.DirectoryUser{}, mapError("create user", err)
	}

	if out.User == nil {
		return model.DirectoryUser{
			Username:   profile.Email,
			Email:      profile.Email,
			Attributes: attributeMap(toAttributeTypes(profile.Attributes())),
		}, nil
	}

	return toDirectoryUser(out.User.Username, out.User.Attributes), nil
}

// SetPermanentPassword moves the user out of FORCE_CHANGE_PASSWORD.
func (c *Client) SetPermanentPassword(ctx context.Context, directoryID, username, secret string) error {
	_, err := c.api.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(directoryID),
		Username:   aws.String(username),
		Password:   aws.String(secret),
		Permanent:  true,
	})
	if err != nil {
		return mapError("set user password", err)
	}

	return nil
}

// LinkFederatedIdentity links identity to the native user. When Cognito rejects the
// link, the destination's identities decide between an idempotent success and
// ErrAlreadyLinked.
func (c *Client) LinkFederatedIdentity(ctx context.Context, directoryID, username string, identity model.FederatedIdentity) error {
	_, err := c.api.AdminLinkProviderForUser(ctx, &cip.AdminLinkProviderForUserInput{
		UserPoolId: aws.String(directoryID),
		DestinationUser: &types.ProviderUserIdentifierType{
			ProviderName:           aws.String(nativeProviderName),
			ProviderAttributeValue: aws.String(username),
		},
		SourceUser: &types.ProviderUserIdentifierType{
			ProviderName:           aws.String(identity.ProviderName),
			ProviderAttributeName:  aws.String(subjectAttributeName),
			ProviderAttributeValue: aws.String(identity.ProviderSubjectID),
		},
	})
	if err == nil {
		return nil
	}
	if !isLinkConflict(err) {
		return mapError("link provider for user", err)
	}

	linked, lookupErr := c.isLinkedTo(ctx, directoryID, username, identity)
	if lookupErr != nil {
		return lookupErr
	}
	if linked {
		return nil
	}

	return fmt.Errorf("failed to link %s to %s: %w: %w", identity, username, model.ErrAlreadyLinked, err)
}

// UpdateAttributes overwrites the named attributes only.
func (c *Client) UpdateAttributes(ctx context.Context, directoryID, username string, updates ...model.AttributeUpdate) error {
	if err := model.ValidateUpdates(updates); err != nil {
		return err
	}

	_, err := c.api.AdminUpdateUserAttributes(ctx, &cip.AdminUpdateUserAttributesInput{
		UserPoolId:     aws.String(directoryID),
		Username:       aws.String(username),
		UserAttributes: toAttributeTypes(updates),
	})
	if err != nil {
		return mapError("update user attributes", err)
	}

	return nil
}

type linkedIdentity struct {
	UserID       string `json:"userId"`
	ProviderName string `json:"providerName"`
}

func (c *Client) isLinkedTo(ctx context.Context, directoryID, username string, identity model.FederatedIdentity) (bool, error) {
	out, err := c.api.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(directoryID),
		Username:   aws.String(username),
	})
	if err != nil {
		return false, mapError("get user", err)
	}

	raw, ok := attributeMap(out.UserAttributes)[identitiesAttribute]
	if !ok || raw == "" {
		return false, nil
	}

	var linked []linkedIdentity
	if err := json.Unmarshal([]byte(raw), &linked); err != nil {
		return false, fmt.Errorf("failed to decode linked identities of %s: %w", username, err)
	}

	for _, l := range linked {
		if l.ProviderName == identity.ProviderName && l.UserID == identity.ProviderSubjectID {
			return true, nil
		}
	}

	return false, nil
}

// linkConflictMarkers are the InvalidParameterException messages Cognito returns
// when the source identity already belongs to a user.
var linkConflictMarkers = []string{
	"merging is not currently supported",
	"already linked",
	"has already been linked",
}

// isLinkConflict reports whether a link rejection means the source identity is taken.
// Other invalid-parameter rejections (unknown provider, bad attribute) are not.
func isLinkConflict(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "AliasExistsException":
		return true
	case "InvalidParameterException":
		msg := strings.ToLower(apiErr.ErrorMessage())
		for _, marker := range linkConflictMarkers {
			if strings.Contains(msg, marker) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func mapError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UsernameExistsException":
			return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUserAlreadyExists, err)
		case "UserNotFoundException":
			return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUserNotFound, err)
		case "InvalidParameterException":
			// request problem, not an outage
			return fmt.Errorf("failed to %s: %w", op, err)
		}
	}

	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrDirectoryUnavailable, err)
}

// emailFilter builds a ListUsers filter; quotes and backslashes are escaped.
func emailFilter(email string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(email)
	return fmt.Sprintf(`email = "%s"`, escaped)
}

func toAttributeTypes(updates []model.AttributeUpdate) []types.AttributeType {
	attrs := make([]types.AttributeType, 0, len(updates))
	for _, u := range updates {
		attrs = append(attrs, types.AttributeType{
			Name:  aws.String(string(u.Key)),
			Value: aws.String(u.Value),
		})
	}
	return attrs
}

func attributeMap(attrs []types.AttributeType) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	return m
}

func toDirectoryUser(username *string, attrs []types.AttributeType) model.DirectoryUser {
	m := attributeMap(attrs)
	return model.DirectoryUser{
		Username:   aws.ToString(username),
		Email:      m[string(model.AttributeEmail)],
		Attributes: m,
	}
}
