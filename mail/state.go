package mail

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Category classifies a draft and selects its formatting rules.
type Category string

const (
	CategoryBusiness Category = "business"
	CategoryPersonal Category = "personal"
	CategorySupport  Category = "support"
	CategoryOther    Category = "other"
)

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	return []Category{CategoryBusiness, CategoryPersonal, CategorySupport, CategoryOther}
}

// ParseCategory maps raw input to a Category. Empty input falls back to
// CategoryOther; any other unknown value is an error.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryOther, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("mail: unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryBusiness, CategoryPersonal, CategorySupport, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// Metadata is the open-ended side map carried by a draft. Keys hold
// caller-supplied context and step-appended diagnostics.
type Metadata map[string]any

// Clone returns a shallow copy. A nil receiver clones to an empty map so
// writers can add keys without touching the source draft.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Draft is the record flowing through a pipeline: the email fields, the
// lifecycle timestamps, and the metadata side map.
type Draft struct {
	Subject    string
	Body       string
	Recipient  string
	Category   Category
	CreatedAt  *time.Time
	ModifiedAt *time.Time
	Metadata   Metadata
}

// New builds a draft with both timestamps set to now and empty metadata.
// An invalid category falls back to CategoryOther.
func New(subject, body, recipient string, cat Category) Draft {
	if !cat.Valid() {
		cat = CategoryOther
	}
	now := time.Now()
	return Draft{
		Subject:    subject,
		Body:       body,
		Recipient:  recipient,
		Category:   cat,
		CreatedAt:  &now,
		ModifiedAt: &now,
		Metadata:   Metadata{},
	}
}

// NewWithMetadata builds a draft like New but seeds the metadata map
// with a copy of md.
func NewWithMetadata(subject, body, recipient string, cat Category, md Metadata) Draft {
	d := New(subject, body, recipient, cat)
	d.Metadata = md.Clone()
	return d
}

// Equal reports field-wise equality: timestamps compare by instant,
// metadata by deep equality.
func (d Draft) Equal(o Draft) bool {
	return d.Subject == o.Subject &&
		d.Body == o.Body &&
		d.Recipient == o.Recipient &&
		d.Category == o.Category &&
		timeEqual(d.CreatedAt, o.CreatedAt) &&
		timeEqual(d.ModifiedAt, o.ModifiedAt) &&
		reflect.DeepEqual(d.Metadata, o.Metadata)
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Render produces the human-readable dump used by the CLI. Blank text
// fields print as "(empty)"; timestamp and metadata lines are omitted
// entirely when absent. Metadata keys print in sorted order.
func (d Draft) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	b.WriteString(rule + "\n")
	b.WriteString("Draft Contents:\n")
	b.WriteString(rule + "\n")
	b.WriteString("Subject: " + orEmpty(d.Subject) + "\n")
	b.WriteString("Recipient: " + orEmpty(d.Recipient) + "\n")
	b.WriteString("Category: " + orEmpty(string(d.Category)) + "\n")
	b.WriteString("Body: " + orEmpty(d.Body) + "\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")

	if d.CreatedAt != nil {
		b.WriteString("Created: " + d.CreatedAt.Format(time.RFC3339) + "\n")
	}
	if d.ModifiedAt != nil {
		b.WriteString("Modified: " + d.ModifiedAt.Format(time.RFC3339) + "\n")
	}
	if len(d.Metadata) > 0 {
		b.WriteString("Metadata:\n")
		keys := make([]string, 0, len(d.Metadata))
		for k := range d.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s: %+v\n", k, d.Metadata[k]))
		}
	}
	b.WriteString(rule)
	return b.String()
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
