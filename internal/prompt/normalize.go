package prompt

import (
	"encoding/json"
	"errors"

	"github.com/nikhilbhutani/promptpulse/internal/models"
)

var ErrMissingRequired = errors.New("title and content are required")

// CreateInput is the raw create payload. Fields stay undecoded so callers may
// send any JSON shape and Normalize coerces them.
type CreateInput struct {
	Title      json.RawMessage `json:"title"`
	Content    json.RawMessage `json:"content"`
	Category   json.RawMessage `json:"category"`
	Author     json.RawMessage `json:"author"`
	Team       json.RawMessage `json:"team"`
	Rating     json.RawMessage `json:"rating"`
	UsageCount json.RawMessage `json:"usageCount"`
	Tags       json.RawMessage `json:"tags"`
}

// Normalize maps a raw payload onto the stored record shape. ID and CreatedAt
// are left for the caller.
func Normalize(in CreateInput) (models.Prompt, error) {
	title := models.DecodeValue(in.Title)
	content := models.DecodeValue(in.Content)
	if !models.Truthy(title) || !models.Truthy(content) {
		return models.Prompt{}, ErrMissingRequired
	}

	return models.Prompt{
		Title:      models.CoerceString(title),
		Content:    models.CoerceString(content),
		Category:   stringOr(models.DecodeValue(in.Category), models.DefaultCategory),
		Author:     stringOr(models.DecodeValue(in.Author), models.DefaultAuthor),
		Team:       stringOr(models.DecodeValue(in.Team), models.DefaultTeam),
		Rating:     models.CoerceNumber(models.DecodeValue(in.Rating)),
		UsageCount: models.CoerceNumber(models.DecodeValue(in.UsageCount)),
		Tags:       models.CoerceTags(models.DecodeValue(in.Tags)),
	}, nil
}

// stringOr substitutes fallback for falsy values.
func stringOr(v any, fallback string) string {
	if !models.Truthy(v) {
		return fallback
	}
	return models.CoerceString(v)
}
