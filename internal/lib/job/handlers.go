package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleContactWelcomeTask(ctx context.Context, t *asynq.Task) error {
	var p ContactWelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that does not decode will never succeed.
		return fmt.Errorf("failed to unmarshal contact welcome payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("task", TaskContactWelcome).
		Int64("contact_id", p.ContactID).
		Logger()

	logger.Info().Msg("processing contact welcome task")

	if err := j.emailClient.SendContactWelcomeEmail(ctx, p.Email, p.Name); err != nil {
		logger.Error().Err(err).Msg("failed to send contact welcome email")
		return err
	}

	logger.Info().Msg("contact welcome task done")
	return nil
}
