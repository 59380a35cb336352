package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrIllegalTransition is returned when a claim is asked to move to a stage
// it cannot reach from its current one
var ErrIllegalTransition = errors.New("illegal claim transition")

// Claim represents a single factual statement moving through the pipeline
type Claim struct {
	ID           string              `json:"id"`
	Text         string              `json:"text"`
	Stage        Stage               `json:"stage"`
	Status       Status              `json:"status"`
	Verification *VerificationResult `json:"verification,omitempty"`
	ExtractedAt  *time.Time          `json:"extracted_at,omitempty"`
	PublishedAt  *time.Time          `json:"published_at,omitempty"`
	VerifiedAt   *time.Time          `json:"verified_at,omitempty"`
}

// Stage is the lifecycle position of a claim. Stages only move forward.
type Stage string

const (
	StageExtracted Stage = "extracted" // Produced by the extraction engine, editable
	StagePublished Stage = "published" // Curated by a human, awaiting verification
	StageVerified  Stage = "verified"  // Verification result attached
)

// rank orders stages so transitions can be checked for monotonicity
func (s Stage) rank() int {
	switch s {
	case StageExtracted:
		return 1
	case StagePublished:
		return 2
	case StageVerified:
		return 3
	default:
		return 0
	}
}

// Before reports whether s comes strictly before other in the lifecycle
func (s Stage) Before(other Stage) bool {
	return s.rank() < other.rank()
}

// Status is the verification outcome of a claim
type Status string

const (
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
	StatusUnverified Status = "unverified"
	StatusMisleading Status = "misleading"
	StatusError      Status = "error"
)

// NewClaim creates an extracted claim with a fresh id
func NewClaim(text string, now time.Time) *Claim {
	extractedAt := now
	return &Claim{
		ID:          uuid.NewString(),
		Text:        strings.TrimSpace(text),
		Stage:       StageExtracted,
		Status:      StatusPending,
		ExtractedAt: &extractedAt,
	}
}

// Edit replaces the claim text. Only extracted claims can be edited.
func (c *Claim) Edit(text string) error {
	if c.Stage != StageExtracted {
		return fmt.Errorf("%w: cannot edit %s claim %s", ErrIllegalTransition, c.Stage, c.ID)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("claim %s: text must not be empty", c.ID)
	}
	c.Text = text
	return nil
}

// Publish moves an extracted claim to the published stage
func (c *Claim) Publish(now time.Time) error {
	if c.Stage != StageExtracted {
		return fmt.Errorf("%w: cannot publish %s claim %s", ErrIllegalTransition, c.Stage, c.ID)
	}
	publishedAt := now
	c.Stage = StagePublished
	c.PublishedAt = &publishedAt
	return nil
}

// Complete attaches the verification result and moves a published claim to
// the verified stage. The result is attached exactly once.
func (c *Claim) Complete(result VerificationResult, now time.Time) error {
	if c.Stage != StagePublished {
		return fmt.Errorf("%w: cannot complete %s claim %s", ErrIllegalTransition, c.Stage, c.ID)
	}
	verifiedAt := now
	c.Stage = StageVerified
	c.Status = result.Status
	c.Verification = &result
	c.VerifiedAt = &verifiedAt
	return nil
}

// Validate checks that stage, timestamps and verification are consistent
func (c *Claim) Validate() error {
	if c.ID == "" {
		return errors.New("claim has no id")
	}
	if c.Stage.rank() == 0 {
		return fmt.Errorf("claim %s: unknown stage %q", c.ID, c.Stage)
	}
	if c.ExtractedAt == nil {
		return fmt.Errorf("claim %s: missing extracted_at", c.ID)
	}
	if (c.PublishedAt != nil) != !c.Stage.Before(StagePublished) {
		return fmt.Errorf("claim %s: published_at inconsistent with stage %s", c.ID, c.Stage)
	}
	verified := c.Stage == StageVerified
	if (c.VerifiedAt != nil) != verified {
		return fmt.Errorf("claim %s: verified_at inconsistent with stage %s", c.ID, c.Stage)
	}
	if (c.Verification != nil) != verified {
		return fmt.Errorf("claim %s: verification inconsistent with stage %s", c.ID, c.Stage)
	}
	if !verified && c.Status != StatusPending {
		return fmt.Errorf("claim %s: status %s before verification", c.ID, c.Status)
	}
	return nil
}

// Clone returns a deep copy so callers can hand claims out without sharing
// mutable state
func (c *Claim) Clone() *Claim {
	out := *c
	if c.Verification != nil {
		v := *c.Verification
		v.Sources = make([]Source, len(c.Verification.Sources))
		copy(v.Sources, c.Verification.Sources)
		out.Verification = &v
	}
	out.ExtractedAt = cloneTime(c.ExtractedAt)
	out.PublishedAt = cloneTime(c.PublishedAt)
	out.VerifiedAt = cloneTime(c.VerifiedAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
