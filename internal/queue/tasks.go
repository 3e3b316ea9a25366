package queue

import "github.com/nikhilbhutani/promptpulse/internal/models"

const (
	TypePromptCreated = "prompt:created"
)

type PromptCreatedPayload struct {
	Prompt models.Prompt `json:"prompt"`
}
