// Package lambda adapts Cognito user pool trigger invocations to the services.
//
// A single function is attached to both the pre sign-up and post authentication
// triggers; the event's triggerSource selects the path.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/model"
)

// Reconciler resolves sign-up events against the directory.
type Reconciler interface {
	Reconcile(ctx context.Context, event *model.SignUpEvent) (model.Outcome, error)
}

// Normalizer applies post-authentication attribute fixes.
type Normalizer interface {
	Normalize(ctx context.Context, event *model.AuthenticationEvent) (model.Outcome, error)
}

// Handler is the Lambda entrypoint for user pool triggers.
type Handler struct {
	reconciler Reconciler
	normalizer Normalizer
	logger     *logger.Logger
}

func NewHandler(reconciler Reconciler, normalizer Normalizer, logger *logger.Logger) *Handler {
	return &Handler{
		reconciler: reconciler,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Handle decodes payload according to its triggerSource and returns the amended event.
// Returning an error makes Cognito reject the sign-up or sign-in.
func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (any, error) {
	var header events.CognitoEventUserPoolsHeader
	if err := json.Unmarshal(payload, &header); err != nil {
		return nil, fmt.Errorf("failed to decode trigger header: %w", err)
	}

	h.logger.Info("Lambda: trigger received",
		"trigger_source", header.TriggerSource,
		"user_pool_id", header.UserPoolID,
		"username", header.UserName,
		"client_id", header.CallerContext.ClientID)

	switch {
	case model.IsPreSignUp(header.TriggerSource):
		var event events.CognitoEventUserPoolsPreSignup
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode pre sign-up event: %w", err)
		}
		return h.PreSignUp(ctx, event)
	case model.IsPostAuthentication(header.TriggerSource):
		var event events.CognitoEventUserPoolsPostAuthentication
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode post authentication event: %w", err)
		}
		return h.PostAuthentication(ctx, event)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownTriggerSource, header.TriggerSource)
	}
}

// PreSignUp reconciles a sign-up and copies the response flags back onto the event.
func (h *Handler) PreSignUp(ctx context.Context, in events.CognitoEventUserPoolsPreSignup) (events.CognitoEventUserPoolsPreSignup, error) {
	event, err := model.NewSignUpEvent(in.TriggerSource, in.UserPoolID, in.UserName, in.Request.UserAttributes)
	if err != nil {
		return in, err
	}
	event.Response.AutoConfirmUser = in.Response.AutoConfirmUser
	event.Response.AutoVerifyEmail = in.Response.AutoVerifyEmail

	outcome, err := h.reconciler.Reconcile(ctx, event)
	if err != nil {
		h.logger.Error("Lambda: pre sign-up failed",
			"user_pool_id", in.UserPoolID,
			"username", in.UserName,
			"error", err.Error())
		return in, err
	}

	in.Response.AutoConfirmUser = event.Response.AutoConfirmUser
	in.Response.AutoVerifyEmail = event.Response.AutoVerifyEmail

	h.logger.Info("Lambda: pre sign-up done",
		"user_pool_id", in.UserPoolID,
		"action", string(outcome.Action),
		"linked_username", outcome.Username)

	return in, nil
}

// PostAuthentication normalizes attributes of the authenticated user.
func (h *Handler) PostAuthentication(ctx context.Context, in events.CognitoEventUserPoolsPostAuthentication) (events.CognitoEventUserPoolsPostAuthentication, error) {
	event := &model.AuthenticationEvent{
		DirectoryID: in.UserPoolID,
		Username:    in.UserName,
		Attributes:  in.Request.UserAttributes,
	}

	outcome, err := h.normalizer.Normalize(ctx, event)
	if err != nil {
		h.logger.Error("Lambda: post authentication failed",
			"user_pool_id", in.UserPoolID,
			"username", in.UserName,
			"error", err.Error())
		return in, err
	}

	h.logger.Info("Lambda: post authentication done",
		"user_pool_id", in.UserPoolID,
		"username", in.UserName,
		"action", string(outcome.Action))

	return in, nil
}
