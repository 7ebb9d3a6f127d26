package handler

import (
	"context"
	"fmt"
	"testing"

	"github.com/dtroode/idlink/internal/api/grpc/rpc"
	"github.com/dtroode/idlink/internal/mocks"
	"github.com/dtroode/idlink/internal/model"
	"github.com/dtroode/idlink/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTriggers(t *testing.T) (*Triggers, *mocks.Reconciler, *mocks.Normalizer) {
	t.Helper()

	rec := mocks.NewReconciler(t)
	norm := mocks.NewNormalizer(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetCallerFromContext", mock.Anything).Return("sidecar", true).Maybe()

	return NewTriggers(rec, norm, cm, testutil.MakeNoopLogger()), rec, norm
}

func TestTriggers_PreSignUp(t *testing.T) {
	t.Parallel()

	federated := &rpc.PreSignUpRequest{
		TriggerSource: model.TriggerSourceExternalProvider,
		UserPoolID:    "eu-west-1_pool",
		UserName:      "google_10234",
		UserAttributes: map[string]string{
			"email":       "ada@example.com",
			"given_name":  "Ada",
			"family_name": "Lovelace",
		},
	}

	t.Run("provisioned sets response flags", func(t *testing.T) {
		t.Parallel()
		h, rec, _ := newTriggers(t)

		rec.On("Reconcile", mock.Anything, mock.MatchedBy(func(e *model.SignUpEvent) bool {
			return e.Origin == model.OriginFederatedSignUp &&
				e.DirectoryID == "eu-west-1_pool" &&
				e.RawIdentifier == "google_10234" &&
				e.Email == "ada@example.com"
		})).Run(func(args mock.Arguments) {
			e := args.Get(1).(*model.SignUpEvent)
			e.Response.AutoConfirmUser = true
			e.Response.AutoVerifyEmail = true
		}).Return(model.Outcome{Action: model.ActionProvisioned, Username: "ada@example.com"}, nil)

		resp, err := h.PreSignUp(context.Background(), federated)
		require.NoError(t, err)
		assert.Equal(t, &rpc.PreSignUpResponse{
			AutoConfirmUser: true,
			AutoVerifyEmail: true,
			Action:          "provisioned",
			Username:        "ada@example.com",
		}, resp)
	})

	t.Run("linked existing leaves flags false", func(t *testing.T) {
		t.Parallel()
		h, rec, _ := newTriggers(t)

		rec.On("Reconcile", mock.Anything, mock.Anything).
			Return(model.Outcome{Action: model.ActionLinkedExisting, Username: "native-user"}, nil)

		resp, err := h.PreSignUp(context.Background(), federated)
		require.NoError(t, err)
		assert.False(t, resp.AutoConfirmUser)
		assert.False(t, resp.AutoVerifyEmail)
		assert.Equal(t, "linked_existing", resp.Action)
	})

	t.Run("unknown trigger source", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newTriggers(t)

		req := *federated
		req.TriggerSource = "PreSignUp_Unknown"
		_, err := h.PreSignUp(context.Background(), &req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("missing pool id", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newTriggers(t)

		req := *federated
		req.UserPoolID = ""
		_, err := h.PreSignUp(context.Background(), &req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("reconcile error is mapped", func(t *testing.T) {
		t.Parallel()
		h, rec, _ := newTriggers(t)

		rec.On("Reconcile", mock.Anything, mock.Anything).
			Return(model.Outcome{}, fmt.Errorf("failed to link identity: %w", model.ErrAlreadyLinked))

		_, err := h.PreSignUp(context.Background(), federated)
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})
}

func TestTriggers_PostAuthentication(t *testing.T) {
	t.Parallel()

	req := &rpc.PostAuthenticationRequest{
		UserPoolID:     "pool",
		UserName:       "ada@example.com",
		UserAttributes: map[string]string{"email_verified": "false"},
	}

	t.Run("reports pending updates", func(t *testing.T) {
		t.Parallel()
		h, _, norm := newTriggers(t)

		norm.On("Normalize", mock.Anything, mock.MatchedBy(func(e *model.AuthenticationEvent) bool {
			return e.DirectoryID == "pool" && e.Username == "ada@example.com"
		})).Run(func(args mock.Arguments) {
			e := args.Get(1).(*model.AuthenticationEvent)
			e.PendingUpdates = append(e.PendingUpdates, model.EmailVerified(true))
		}).Return(model.Outcome{Action: model.ActionEmailVerified, Username: "ada@example.com"}, nil)

		resp, err := h.PostAuthentication(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "email_verified", resp.Action)
		assert.Equal(t, map[string]string{"email_verified": "true"}, resp.UpdatedAttributes)
	})

	t.Run("already verified", func(t *testing.T) {
		t.Parallel()
		h, _, norm := newTriggers(t)

		norm.On("Normalize", mock.Anything, mock.Anything).
			Return(model.Outcome{Action: model.ActionNone, Username: "ada@example.com"}, nil)

		resp, err := h.PostAuthentication(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "none", resp.Action)
		assert.Nil(t, resp.UpdatedAttributes)
	})

	t.Run("missing user name", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newTriggers(t)

		_, err := h.PostAuthentication(context.Background(), &rpc.PostAuthenticationRequest{UserPoolID: "pool"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("directory unavailable", func(t *testing.T) {
		t.Parallel()
		h, _, norm := newTriggers(t)

		norm.On("Normalize", mock.Anything, mock.Anything).
			Return(model.Outcome{}, fmt.Errorf("failed to update user attributes: %w", model.ErrDirectoryUnavailable))

		_, err := h.PostAuthentication(context.Background(), req)
		assert.Equal(t, codes.Unavailable, status.Code(err))
	})
}
