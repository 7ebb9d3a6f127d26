package handler

import (
	"context"

	"github.com/dtroode/idlink/internal/api/grpc/rpc"
	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Reconciler resolves sign-up events against the directory.
type Reconciler interface {
	Reconcile(ctx context.Context, event *model.SignUpEvent) (model.Outcome, error)
}

// Normalizer applies post-authentication attribute fixes.
type Normalizer interface {
	Normalize(ctx context.Context, event *model.AuthenticationEvent) (model.Outcome, error)
}

var _ rpc.TriggersServer = (*Triggers)(nil)

// Triggers handles the idlink.Triggers gRPC endpoints.
type Triggers struct {
	reconciler     Reconciler
	normalizer     Normalizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTriggers creates a new Triggers handler.
func NewTriggers(reconciler Reconciler, normalizer Normalizer, contextManager model.ContextManager, logger *logger.Logger) *Triggers {
	return &Triggers{
		reconciler:     reconciler,
		normalizer:     normalizer,
		contextManager: contextManager,
		logger:         logger,
	}
}

// PreSignUp runs identity reconciliation and returns the amended sign-up response.
func (h *Triggers) PreSignUp(ctx context.Context, req *rpc.PreSignUpRequest) (*rpc.PreSignUpResponse, error) {
	caller, _ := h.contextManager.GetCallerFromContext(ctx)
	h.logger.Debug("Triggers handler: processing pre sign-up",
		"caller", caller,
		"trigger_source", req.TriggerSource,
		"directory_id", req.UserPoolID,
		"username", req.UserName)

	if req.UserPoolID == "" {
		return nil, status.Error(codes.InvalidArgument, "user pool id is required")
	}

	event, err := model.NewSignUpEvent(req.TriggerSource, req.UserPoolID, req.UserName, req.UserAttributes)
	if err != nil {
		return nil, handleError(err)
	}

	outcome, err := h.reconciler.Reconcile(ctx, event)
	if err != nil {
		h.logger.Error("Triggers handler: pre sign-up failed",
			"caller", caller,
			"directory_id", req.UserPoolID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.PreSignUpResponse{
		AutoConfirmUser: event.Response.AutoConfirmUser,
		AutoVerifyEmail: event.Response.AutoVerifyEmail,
		Action:          string(outcome.Action),
		Username:        outcome.Username,
	}, nil
}

// PostAuthentication marks the user's email verified when needed.
func (h *Triggers) PostAuthentication(ctx context.Context, req *rpc.PostAuthenticationRequest) (*rpc.PostAuthenticationResponse, error) {
	caller, _ := h.contextManager.GetCallerFromContext(ctx)
	h.logger.Debug("Triggers handler: processing post authentication",
		"caller", caller,
		"directory_id", req.UserPoolID,
		"username", req.UserName)

	if req.UserPoolID == "" || req.UserName == "" {
		return nil, status.Error(codes.InvalidArgument, "user pool id and user name are required")
	}

	event := &model.AuthenticationEvent{
		DirectoryID: req.UserPoolID,
		Username:    req.UserName,
		Attributes:  req.UserAttributes,
	}

	outcome, err := h.normalizer.Normalize(ctx, event)
	if err != nil {
		h.logger.Error("Triggers handler: post authentication failed",
			"caller", caller,
			"directory_id", req.UserPoolID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.PostAuthenticationResponse{
		Action:            string(outcome.Action),
		UpdatedAttributes: event.PendingAttributes(),
	}, nil
}
