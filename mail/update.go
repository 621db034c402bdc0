package mail

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Update is the partial replacement set produced by one pipeline step.
// Nil fields are left untouched by Apply; a non-nil Metadata replaces the
// whole map, so steps that add a key must clone the existing map first.
type Update struct {
	Subject   *string
	Body      *string
	Recipient *string
	Category  *Category
	Metadata  Metadata
}

// IsZero reports whether the update carries no replacements.
func (u Update) IsZero() bool {
	return u.Subject == nil &&
		u.Body == nil &&
		u.Recipient == nil &&
		u.Category == nil &&
		u.Metadata == nil
}

// String summarizes the carried replacements for diagnostics, e.g.
// stream output. Metadata is reported by its keys rather than dumped.
func (u Update) String() string {
	if u.IsZero() {
		return "(no change)"
	}
	var parts []string
	if u.Subject != nil {
		parts = append(parts, fmt.Sprintf("subject=%q", *u.Subject))
	}
	if u.Body != nil {
		parts = append(parts, fmt.Sprintf("body=%q", *u.Body))
	}
	if u.Recipient != nil {
		parts = append(parts, fmt.Sprintf("recipient=%q", *u.Recipient))
	}
	if u.Category != nil {
		parts = append(parts, "category="+u.Category.String())
	}
	if u.Metadata != nil {
		keys := make([]string, 0, len(u.Metadata))
		for k := range u.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts = append(parts, "metadata{"+strings.Join(keys, ", ")+"}")
	}
	return strings.Join(parts, " ")
}

// Apply merges u into d and returns the resulting draft. A non-empty
// update refreshes ModifiedAt to now; an empty one returns a value equal
// to d in every field. CreatedAt is not representable in an Update and
// therefore never changes after construction.
func Apply(d Draft, u Update) Draft {
	out := d
	if u.IsZero() {
		return out
	}
	if u.Subject != nil {
		out.Subject = *u.Subject
	}
	if u.Body != nil {
		out.Body = *u.Body
	}
	if u.Recipient != nil {
		out.Recipient = *u.Recipient
	}
	if u.Category != nil {
		out.Category = *u.Category
	}
	if u.Metadata != nil {
		out.Metadata = u.Metadata
	}
	now := time.Now()
	out.ModifiedAt = &now
	return out
}
