package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/idlink/internal/logger"
	"github.com/dtroode/idlink/internal/metrics"
	"github.com/dtroode/idlink/internal/model"
)

// Normalizer marks the email of every authenticated user as verified.
type Normalizer struct {
	directory model.Directory
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewNormalizer(directory model.Directory, metrics *metrics.Metrics, logger *logger.Logger) *Normalizer {
	return &Normalizer{
		directory: directory,
		metrics:   metrics,
		logger:    logger,
	}
}

// Normalize sets email_verified to "true" unless the event already carries it.
func (n *Normalizer) Normalize(ctx context.Context, event *model.AuthenticationEvent) (outcome model.Outcome, err error) {
	started := time.Now()
	defer func() {
		action := string(outcome.Action)
		if err != nil {
			action = metrics.ActionFailed
		}
		n.metrics.Observe(metrics.TriggerPostAuthentication, action, started)
	}()

	if event.Attributes[string(model.AttributeEmailVerified)] == "true" {
		return model.Outcome{Action: model.ActionNone, Username: event.Username}, nil
	}

	update := model.EmailVerified(true)
	err = n.directory.UpdateAttributes(ctx, event.DirectoryID, event.Username, update)
	if err != nil {
		n.logger.Error("Normalizer: failed to mark email verified",
			"directory_id", event.DirectoryID,
			"username", event.Username,
			"error", err.Error())
		return model.Outcome{}, fmt.Errorf("failed to update user attributes: %w", err)
	}

	event.PendingUpdates = append(event.PendingUpdates, update)

	n.logger.Info("Normalizer: marked email verified",
		"directory_id", event.DirectoryID,
		"username", event.Username)

	return model.Outcome{Action: model.ActionEmailVerified, Username: event.Username}, nil
}
