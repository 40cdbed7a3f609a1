package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskWelcome = "email:welcome"

// welcomeUniqueFor keeps a finished welcome task around so a repeated
// enqueue for the same user conflicts instead of mailing twice.
const welcomeUniqueFor = time.Hour

// WelcomeEmailPayload is the JSON payload of a welcome email task.
type WelcomeEmailPayload struct {
	To       []string `json:"to"`
	UserName string   `json:"user_name"`
}

// NewWelcomeEmailTask builds the welcome task for a newly registered user.
// Tasks are deduplicated per user name.
func NewWelcomeEmailTask(to []string, userName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, UserName: userName})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskWelcome, payload, welcomeTaskOptions(userName)...), nil
}

// welcomeTaskOptions: three retries of at most 30 seconds each on the
// low queue.
func welcomeTaskOptions(userName string) []asynq.Option {
	return []asynq.Option{
		asynq.Queue("low"),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
		asynq.TaskID("welcome:" + userName),
		asynq.Retention(welcomeUniqueFor),
	}
}
