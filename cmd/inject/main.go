package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nikhilbhutani/promptpulse/internal/client"
)

const usage = `Usage: inject-prompt --title "Title" (--content "..." | --file .cursorrules) [--category "Cursor Rules"] [--author "Name"] [--team "Team"] [--tags "a,b"] [--api URL] [--timeout 30s]`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := client.ParseArgs(args)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts, err = client.ResolveContent(opts, cwd)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	baseURL := opts.APIURL
	if baseURL == "" {
		baseURL = os.Getenv("MUST_PULSE_API_URL")
	}

	created, err := client.New(baseURL, opts.Timeout).Submit(context.Background(), opts.Payload)
	if err != nil {
		var apiErr *client.APIError
		switch {
		case errors.Is(err, client.ErrUsage):
			fmt.Fprintln(stderr, usage)
		case errors.As(err, &apiErr):
			fmt.Fprintf(stderr, "API error: %d %s\n", apiErr.Status, apiErr.Body)
		default:
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	fmt.Fprintf(stdout, "OK: Prompt injected. Id: %s\n", created.ID)
	return 0
}
