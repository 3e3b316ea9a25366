package queue

import (
	"github.com/hibiken/asynq"
)

// NewMux routes each task type produced by Client to its handler.
func NewMux(promptCreated asynq.Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypePromptCreated, promptCreated)
	return mux
}
