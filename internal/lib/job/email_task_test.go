package job

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	to := []string{"jo@example.com", "ray@example.com"}

	task, err := NewWelcomeEmailTask(to, "jdoe")
	if err != nil {
		t.Fatalf("NewWelcomeEmailTask: %v", err)
	}
	if task.Type() != TaskWelcome {
		t.Fatalf("type = %q, want %q", task.Type(), TaskWelcome)
	}

	var payload WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if !reflect.DeepEqual(payload.To, to) || payload.UserName != "jdoe" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestWelcomeEmailHandlerSkipsRetryOnBadPayload(t *testing.T) {
	j := &JobService{}

	tests := map[string][]byte{
		"not json":      []byte("{"),
		"no recipients": []byte(`{"to":[],"user_name":"jdoe"}`),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, payload))
			if !errors.Is(err, asynq.SkipRetry) {
				t.Fatalf("err = %v, want SkipRetry", err)
			}
		})
	}
}

func TestWelcomeTaskOptions(t *testing.T) {
	want := map[asynq.OptionType]any{
		asynq.QueueOpt:    "low",
		asynq.MaxRetryOpt: 3,
		asynq.TimeoutOpt:  30 * time.Second,
		asynq.TaskIDOpt:   "welcome:jdoe",
	}

	got := make(map[asynq.OptionType]any)
	for _, opt := range welcomeTaskOptions("jdoe") {
		got[opt.Type()] = opt.Value()
	}

	for typ, value := range want {
		if got[typ] != value {
			t.Errorf("option %v = %v, want %v", typ, got[typ], value)
		}
	}
}
