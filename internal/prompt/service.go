package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikhilbhutani/promptpulse/internal/models"
	"github.com/nikhilbhutani/promptpulse/internal/store"
)

// Publisher is notified after a prompt has been persisted.
type Publisher interface {
	PublishPromptCreated(ctx context.Context, p models.Prompt) error
}

type Service struct {
	store  store.Store
	pub    Publisher
	logger *slog.Logger

	now   func() time.Time
	newID func(time.Time) string
}

// NewService wires a service over st. pub may be nil.
func NewService(st store.Store, pub Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		pub:    pub,
		logger: logger,
		now:    time.Now,
		newID:  NewID,
	}
}

func (s *Service) List(ctx context.Context) ([]models.Prompt, error) {
	prompts, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	return prompts, nil
}

// Create validates in, stamps identity and defaults, and appends the record.
// It returns ErrMissingRequired when title or content is absent.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Prompt, error) {
	p, err := Normalize(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p.ID = s.newID(now)
	p.CreatedAt = now.UTC().Format(models.TimeFormat)

	if err := s.store.Append(ctx, p); err != nil {
		return nil, fmt.Errorf("append prompt: %w", err)
	}

	if s.pub != nil {
		if err := s.pub.PublishPromptCreated(ctx, p); err != nil {
			s.logger.Warn("failed to publish prompt created event", "id", p.ID, "error", err)
		}
	}

	return &p, nil
}
