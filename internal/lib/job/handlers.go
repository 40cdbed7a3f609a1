package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask sends the welcome mail. Undecodable or
// recipient-less payloads are dropped without retrying.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decoding %s payload: %v: %w", TaskWelcome, err, asynq.SkipRetry)
	}
	if len(p.To) == 0 {
		return fmt.Errorf("welcome mail for %q has no recipients: %w", p.UserName, asynq.SkipRetry)
	}

	taskID, _ := asynq.GetTaskID(ctx)
	retried, _ := asynq.GetRetryCount(ctx)
	log := j.logger.With().
		Str("task_id", taskID).
		Str("user_name", p.UserName).
		Int("retry", retried).
		Logger()

	if err := j.emails.SendWelcomeEmail(p.To, p.UserName); err != nil {
		log.Warn().Err(err).Msg("welcome mail not sent")
		return err
	}

	log.Info().Int("recipients", len(p.To)).Msg("welcome mail sent")
	return nil
}
