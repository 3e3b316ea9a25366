package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikhilbhutani/promptpulse/internal/models"
)

// PostgresStore keeps records in the prompts table; seq preserves insertion
// order. The schema comes from database.RunMigrations.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ReadAll(ctx context.Context) ([]models.Prompt, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, content, category, author, team, rating, usage_count, created_at, tags
		 FROM prompts ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		var p models.Prompt
		var tags []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Category, &p.Author, &p.Team,
			&p.Rating, &p.UsageCount, &p.CreatedAt, &tags); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of %s: %w", p.ID, err)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}
	return prompts, nil
}

func (s *PostgresStore) Append(ctx context.Context, p models.Prompt) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO prompts (id, title, content, category, author, team, rating, usage_count, created_at, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Title, p.Content, p.Category, p.Author, p.Team, p.Rating, p.UsageCount, p.CreatedAt, tagsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
