package relay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

const defaultCommandTimeout = 30 * time.Second

// ErrSearchTimeout is returned when the search command outlives its timeout
var ErrSearchTimeout = errors.New("search command timeout")

// CommandBackend runs an external search utility. The utility is invoked
// as: <command> [args...] <query> --json <file> --limit <n> --no-cache
type CommandBackend struct {
	command string
	args    []string
	timeout time.Duration
}

// NewCommandBackend creates a backend around an external command
func NewCommandBackend(command string, args []string, timeout time.Duration) *CommandBackend {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &CommandBackend{
		command: command,
		args:    append([]string(nil), args...),
		timeout: timeout,
	}
}

// Name returns the backend name
func (b *CommandBackend) Name() string {
	return "command"
}

// fileResult is one entry of the utility's JSON output
type fileResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	URL         string `json:"url"`
}

// Search runs the command and collects its results, preferring the JSON
// file and falling back to the plain-text listing on stdout
func (b *CommandBackend) Search(ctx context.Context, query string, limit int) ([]model.RelayResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	jsonPath, err := reserveTempPath()
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(jsonPath) }()

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	args := append(append([]string(nil), b.args...),
		query, "--json", jsonPath, "--limit", strconv.Itoa(limit), "--no-cache")
	cmd := exec.CommandContext(ctx, b.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running search command", "command", b.command, "query", query)
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrSearchTimeout
		}
		return nil, fmt.Errorf("search command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		slog.Debug("search command wrote no JSON file, parsing stdout")
		return normalize(parsePlainText(stdout.String()), limit), nil
	}

	var entries []fileResult
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	results := make([]model.RelayResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, model.RelayResult{
			Title:   e.Title,
			Snippet: firstNonEmpty(e.Description, e.Snippet),
			URL:     firstNonEmpty(e.Link, e.URL),
		})
	}
	return normalize(results, limit), nil
}

// reserveTempPath returns a fresh path for the command's JSON output. The
// file itself is removed so its presence after the run means the command
// wrote it.
func reserveTempPath() (string, error) {
	f, err := os.CreateTemp("", "claimcheck-search-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("prepare temp file: %w", err)
	}
	return path, nil
}

var numberedLine = regexp.MustCompile(`^\d+\.\s*`)

// parsePlainText reads the utility's console listing:
//
//	1. Title
//	   https://example.com
//	   Snippet text
//
// Lines containing '=' are progress noise and ignored.
func parsePlainText(text string) []model.RelayResult {
	var results []model.RelayResult
	var current *model.RelayResult

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case numberedLine.MatchString(line):
			if current != nil {
				results = append(results, *current)
			}
			current = &model.RelayResult{Title: strings.TrimSpace(numberedLine.ReplaceAllString(line, ""))}
		case current == nil || trimmed == "":
		case strings.HasPrefix(trimmed, "http"):
			current.URL = trimmed
		case !strings.Contains(line, "="):
			current.Snippet = trimmed
		}
	}
	if current != nil {
		results = append(results, *current)
	}
	return results
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
