package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskContactWelcome = "contact:welcome"
)

type ContactWelcomePayload struct {
	ContactID int64  `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// NewContactWelcomeTask builds the task enqueued after a contact is created.
func NewContactWelcomeTask(contactID int64, name, email string) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactWelcomePayload{
		ContactID: contactID,
		Name:      name,
		Email:     email,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
