package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/progress"
)

// Checker runs a full check on one document
type Checker interface {
	Check(ctx context.Context, text string, sink progress.Sink) (*model.Report, error)
}

// CheckJob checks the document stored at Path
type CheckJob struct {
	Index   int
	Path    string
	Checker Checker
}

// Execute reads the document and checks it
func (j *CheckJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &CheckResult{Index: j.Index, Path: j.Path, Error: fmt.Errorf("read document: %w", err)}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return &CheckResult{Index: j.Index, Path: j.Path, Error: fmt.Errorf("document is empty")}
	}

	report, err := j.Checker.Check(ctx, text, nil)
	return &CheckResult{
		Index:  j.Index,
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// CheckResult is the outcome of one document check
type CheckResult struct {
	Index  int
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks many documents concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessPaths checks every document and returns the results in input order
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &CheckJob{Index: i, Path: path, Checker: b.checker}
	}

	results := Run(ctx, b.concurrency, jobs)

	checkResults := make([]*CheckResult, 0, len(results))
	for _, result := range results {
		checkResults = append(checkResults, result.(*CheckResult))
	}
	sort.Slice(checkResults, func(i, j int) bool {
		return checkResults[i].Index < checkResults[j].Index
	})
	return checkResults
}

// ProcessFile reads document paths from a list file and checks them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*CheckResult, error) {
	paths, err := ReadLines(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadLines reads non-empty lines from a file, skipping '#' comments and
// duplicates
func ReadLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
