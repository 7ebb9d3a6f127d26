package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/idlink/internal/identity"
	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/metrics"
	"github.com/dtroode/idlink/internal/model"
)

// PasswordGenerator produces secrets for provisioned accounts.
type PasswordGenerator interface {
	Generate() (string, error)
}

// Reconciler decides, per sign-up event, whether a federated identity is linked to an
// existing native account, a native account is provisioned and linked, or nothing happens.
type Reconciler struct {
	directory model.Directory
	passwords PasswordGenerator
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewReconciler(
	directory model.Directory,
	passwords PasswordGenerator,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Reconciler {
	return &Reconciler{
		directory: directory,
		passwords: passwords,
		metrics:   metrics,
		logger:    logger,
	}
}

// Reconcile runs the decision procedure for event. event.Response is amended in place
// and only after every directory mutation succeeded.
func (r *Reconciler) Reconcile(ctx context.Context, event *model.SignUpEvent) (outcome model.Outcome, err error) {
	started := time.Now()
	defer func() {
		action := string(outcome.Action)
		if err != nil {
			action = metrics.ActionFailed
		}
		r.metrics.Observe(metrics.TriggerPreSignUp, action, started)
	}()

	if event.Origin != model.OriginFederatedSignUp {
		r.logger.Debug("Reconciler: native sign-up, nothing to reconcile",
			"directory_id", event.DirectoryID,
			"origin", event.Origin.String())
		return model.Outcome{Action: model.ActionNone}, nil
	}

	fedIdentity, err := identity.Parse(event.RawIdentifier)
	if err != nil {
		r.logger.Error("Reconciler: failed to parse federated identifier",
			"directory_id", event.DirectoryID,
			"identifier", event.RawIdentifier,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to parse federated identifier: %w", err)
	}

	user, found, err := r.directory.FindByEmail(ctx, event.DirectoryID, event.Email)
	if err != nil {
		r.logger.Error("Reconciler: failed to find user by email",
			"directory_id", event.DirectoryID,
			"provider", fedIdentity.ProviderName,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to find user by email: %w", err)
	}

	if found {
		return r.linkExisting(ctx, event, user, fedIdentity)
	}

	return r.provision(ctx, event, fedIdentity)
}

func (r *Reconciler) linkExisting(
	ctx context.Context,
	event *model.SignUpEvent,
	user model.DirectoryUser,
	fedIdentity model.FederatedIdentity,
) (model.Outcome, error) {
	err := r.directory.LinkFederatedIdentity(ctx, event.DirectoryID, user.Username, fedIdentity)
	if err != nil {
		r.logger.Error("Reconciler: failed to link identity to existing user",
			"directory_id", event.DirectoryID,
			"username", user.Username,
			"provider", fedIdentity.ProviderName,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to link federated identity: %w", err)
	}

	r.logger.Info("Reconciler: linked federated identity to existing user",
		"directory_id", event.DirectoryID,
		"username", user.Username,
		"provider", fedIdentity.ProviderName)

	return model.Outcome{
		Action:   model.ActionLinkedExisting,
		Username: user.Username,
		Identity: fedIdentity,
	}, nil
}

// provision handles a first-time federated registration. A failure after the account
// was created leaves it unlinked; the retried sign-up finds it by email and links it.
func (r *Reconciler) provision(
	ctx context.Context,
	event *model.SignUpEvent,
	fedIdentity model.FederatedIdentity,
) (model.Outcome, error) {
	user, err := r.directory.CreateNativeUser(ctx, event.DirectoryID, model.NativeProfile{
		Email:      event.Email,
		GivenName:  event.GivenName,
		FamilyName: event.FamilyName,
	})
	if err != nil {
		r.logger.Error("Reconciler: failed to create native user",
			"directory_id", event.DirectoryID,
			"provider", fedIdentity.ProviderName,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to create native user: %w", err)
	}

	secret, err := r.passwords.Generate()
	if err != nil {
		return model.Outcome{}, fmt.Errorf("failed to generate password: %w", err)
	}

	err = r.directory.SetPermanentPassword(ctx, event.DirectoryID, user.Username, secret)
	if err != nil {
		r.logger.Error("Reconciler: failed to set permanent password",
			"directory_id", event.DirectoryID,
			"username", user.Username,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to set permanent password: %w", err)
	}

	err = r.directory.LinkFederatedIdentity(ctx, event.DirectoryID, user.Username, fedIdentity)
	if err != nil {
		r.logger.Error("Reconciler: failed to link identity to provisioned user",
			"directory_id", event.DirectoryID,
			"username", user.Username,
			"provider", fedIdentity.ProviderName,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to link federated identity: %w", err)
	}

	if event.Response == nil {
		event.Response = &model.SignUpResponse{}
	}
	event.Response.AutoVerifyEmail = true
	event.Response.AutoConfirmUser = true

	r.logger.Info("Reconciler: provisioned native user for federated sign-up",
		"directory_id", event.DirectoryID,
		"username", user.Username,
		"provider", fedIdentity.ProviderName)

	return model.Outcome{
		Action:   model.ActionProvisioned,
		Username: user.Username,
		Identity: fedIdentity,
	}, nil
}
