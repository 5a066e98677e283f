package models

import (
	"strings"
	"time"
)

// Category identifies which extractor produced an issue.
type Category string

const (
	CategoryUserConflict Category = "UserConflict"
	CategorySystemError  Category = "SystemError"
	CategoryResourceFlag Category = "ResourceFlag"
	CategoryEventAnomaly Category = "EventAnomaly"
)

// Issue is the normalized record emitted by every extractor. Records are
// immutable once produced and are kept in the order the extractor
// encountered them in its input.
type Issue struct {
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	CodeOrID    string    `json:"code_or_id,omitempty"`
	Value       *float64  `json:"value,omitempty"`
	Output      string    `json:"output,omitempty"`
	ObservedAt  time.Time `json:"observed_at"`
}

// NewIssue builds a record with a trimmed description and the current
// observation time. The description is the offending source line or data
// value; source logs often carry no usable per-line timestamp, so the
// extraction time stands in for it.
func NewIssue(category Category, description string) Issue {
	return Issue{
		Category:    category,
		Description: strings.TrimSpace(description),
		ObservedAt:  time.Now(),
	}
}

// WithCode returns a copy of the issue carrying a short identifier such as
// an error code or event ID.
func (i Issue) WithCode(code string) Issue {
	i.CodeOrID = code
	return i
}

// WithValue returns a copy of the issue carrying a numeric payload, used by
// resource flags for the measured utilisation percentage.
func (i Issue) WithValue(v float64) Issue {
	i.Value = &v
	return i
}

// WithOutput returns a copy of the issue carrying auxiliary raw text, used
// by the resource fallback path for captured command output.
func (i Issue) WithOutput(out string) Issue {
	i.Output = out
	return i
}

// Snapshot holds raw captured process and connection listings, each
// truncated to a bounded size by the collector.
type Snapshot struct {
	Processes   string `json:"processes"`
	Connections string `json:"connections"`
}
