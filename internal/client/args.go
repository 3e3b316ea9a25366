package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikhilbhutani/promptpulse/internal/models"
	"github.com/nikhilbhutani/promptpulse/pkg/textextract"
)

var ErrFileNotFound = errors.New("file not found")

// Options is what the command line asked for. Payload fields start at the
// server's defaults so an omitted flag and an omitted field agree.
type Options struct {
	Payload
	File    string
	APIURL  string
	Timeout time.Duration
}

// ParseArgs reads flag/value pairs from argv. Unknown flags are skipped and a
// flag with a missing or empty value leaves its field unchanged. Values are
// taken literally, so "--title --content" sets the title to "--content".
func ParseArgs(argv []string) Options {
	opts := Options{
		Payload: Payload{
			Category: models.DefaultCategory,
			Author:   models.DefaultAuthor,
			Team:     models.DefaultTeam,
			Tags:     []string{},
		},
	}

	for i := 0; i < len(argv); i++ {
		if i+1 >= len(argv) || argv[i+1] == "" {
			continue
		}
		val := argv[i+1]

		switch argv[i] {
		case "--title":
			opts.Title = val
		case "--content":
			opts.Content = val
		case "--file":
			opts.File = val
		case "--category":
			opts.Category = val
		case "--author":
			opts.Author = val
		case "--team":
			opts.Team = val
		case "--tags":
			opts.Tags = splitTags(val)
		case "--api":
			opts.APIURL = val
		case "--timeout":
			if d, err := time.ParseDuration(val); err == nil && d > 0 {
				opts.Timeout = d
			}
		default:
			continue
		}
		i++
	}
	return opts
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ResolveContent replaces Content with the text of File, if one was given.
// Relative paths are taken from cwd.
func ResolveContent(opts Options, cwd string) (Options, error) {
	if opts.File == "" {
		return opts, nil
	}

	path := opts.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return opts, fmt.Errorf("stat %s: %w", path, err)
	}

	text, err := textextract.ReadFile(path)
	if err != nil {
		return opts, err
	}
	opts.Content = text
	return opts, nil
}
