package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Renderer writes reports as JSON, Markdown and a terminal summary
type Renderer struct {
	IncludeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{IncludeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteJSON(w, report) })
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteMarkdown(w, report) })
}

// WriteJSON encodes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteMarkdown renders the report as Markdown
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) error {
	var b strings.Builder

	b.WriteString("# Claim Verification Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	if report.LLM != nil {
		fmt.Fprintf(&b, "Model: %s", report.LLM.Provider)
		if report.LLM.Model != "" {
			fmt.Fprintf(&b, "/%s", report.LLM.Model)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	s := report.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Status | Claims |\n|---|---|\n")
	fmt.Fprintf(&b, "| Verified | %d |\n", s.Verified)
	fmt.Fprintf(&b, "| Unverified | %d |\n", s.Unverified)
	fmt.Fprintf(&b, "| Misleading | %d |\n", s.Misleading)
	fmt.Fprintf(&b, "| Error | %d |\n", s.Errors)
	if pending := Pending(s); pending > 0 {
		fmt.Fprintf(&b, "| Pending | %d |\n", pending)
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", s.Total)
	if s.Corrected > 0 || s.Fallbacks > 0 {
		fmt.Fprintf(&b, "%d verdicts corrected from their explanation, %d produced without the model.\n\n", s.Corrected, s.Fallbacks)
	}

	b.WriteString("## Claims\n\n")
	if len(report.Claims) == 0 {
		b.WriteString("No claims.\n\n")
	}
	for i, claim := range report.Claims {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, claim.Text)
		fmt.Fprintf(&b, "**Status:** %s", statusLabel(claim.Status))
		v := claim.Verification
		if v == nil {
			b.WriteString("\n\n")
			continue
		}
		fmt.Fprintf(&b, " (confidence %d%%)", v.Confidence)
		if v.Corrected {
			b.WriteString(" · corrected")
		}
		if v.Fallback {
			b.WriteString(" · heuristic")
		}
		b.WriteString("\n\n")
		if v.Explanation != "" {
			fmt.Fprintf(&b, "%s\n\n", v.Explanation)
		}
		for _, source := range v.Sources {
			b.WriteString("- ")
			b.WriteString(sourceLine(source))
			b.WriteString("\n")
		}
		if len(v.Sources) > 0 {
			b.WriteString("\n")
		}
	}

	if len(report.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, source := range report.Sources {
			b.WriteString("- ")
			b.WriteString(sourceLine(source))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if r.IncludeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Verdicts are advisory. They reflect only the sources consulted and may be wrong; ")
		b.WriteString("check the linked sources before relying on them.*\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummary prints a short plain-text summary
func (r *Renderer) WriteSummary(w io.Writer, report *model.Report) {
	s := report.Summary
	fmt.Fprintf(w, "\n%d claims: %d verified, %d unverified, %d misleading, %d errors\n",
		s.Total, s.Verified, s.Unverified, s.Misleading, s.Errors)
	for i, claim := range report.Claims {
		confidence := ""
		if claim.Verification != nil {
			confidence = fmt.Sprintf(" %3d%%", claim.Verification.Confidence)
		}
		fmt.Fprintf(w, "  %2d. [%-10s%s] %s\n", i+1, claim.Status, confidence, claim.Text)
	}
}

func statusLabel(status model.Status) string {
	switch status {
	case model.StatusVerified:
		return "✓ Verified"
	case model.StatusUnverified:
		return "? Unverified"
	case model.StatusMisleading:
		return "✗ Misleading"
	case model.StatusError:
		return "! Error"
	default:
		return string(status)
	}
}

func sourceLine(source model.Source) string {
	title := source.Title
	if title == "" {
		title = source.URL
	}
	line := title
	if source.URL != "" {
		line = fmt.Sprintf("[%s](%s)", title, source.URL)
	}
	line += fmt.Sprintf(" (%s", source.Kind)
	if source.Authority != model.TierUnknown {
		line += ", " + source.Authority.String()
	}
	return line + ")"
}

// writeFile creates path's directory and writes the file through fn
func writeFile(path string, fn func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return fn(f)
}
