package models

import "encoding/json"

const (
	DefaultCategory = "Cursor Rules"
	DefaultAuthor   = "IDE"
	DefaultTeam     = "Unknown"
)

// TimeFormat is the layout of Prompt.CreatedAt, always in UTC.
const TimeFormat = "2006-01-02T15:04:05.000Z"

type Prompt struct {
	ID         string   `json:"id" db:"id"`
	Title      string   `json:"title" db:"title"`
	Content    string   `json:"content" db:"content"`
	Category   string   `json:"category" db:"category"`
	Author     string   `json:"author" db:"author"`
	Team       string   `json:"team" db:"team"`
	Rating     float64  `json:"rating" db:"rating"`
	UsageCount float64  `json:"usageCount" db:"usage_count"`
	CreatedAt  string   `json:"createdAt" db:"created_at"`
	Tags       []string `json:"tags" db:"tags"`
}

// UnmarshalJSON accepts records written by older or foreign writers: any
// JSON value is coerced into the field's type instead of failing the decode.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw struct {
		ID         json.RawMessage `json:"id"`
		Title      json.RawMessage `json:"title"`
		Content    json.RawMessage `json:"content"`
		Category   json.RawMessage `json:"category"`
		Author     json.RawMessage `json:"author"`
		Team       json.RawMessage `json:"team"`
		Rating     json.RawMessage `json:"rating"`
		UsageCount json.RawMessage `json:"usageCount"`
		CreatedAt  json.RawMessage `json:"createdAt"`
		Tags       json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Prompt{
		ID:         CoerceString(DecodeValue(raw.ID)),
		Title:      CoerceString(DecodeValue(raw.Title)),
		Content:    CoerceString(DecodeValue(raw.Content)),
		Category:   CoerceString(DecodeValue(raw.Category)),
		Author:     CoerceString(DecodeValue(raw.Author)),
		Team:       CoerceString(DecodeValue(raw.Team)),
		Rating:     CoerceNumber(DecodeValue(raw.Rating)),
		UsageCount: CoerceNumber(DecodeValue(raw.UsageCount)),
		CreatedAt:  CoerceString(DecodeValue(raw.CreatedAt)),
		Tags:       CoerceTags(DecodeValue(raw.Tags)),
	}
	return nil
}
