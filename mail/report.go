package mail

// Metadata keys recognized by the pipeline steps.
const (
	KeySenderName = "sender_name"
	KeyValidation = "validation"
	KeyStatistics = "statistics"
)

// Report is the validator's verdict, stored under KeyValidation. Passed
// turns false only on recipient problems; everything else is appended to
// Issues without failing the draft.
type Report struct {
	ValidatedAt string   `json:"validated_at"`
	Passed      bool     `json:"validation_passed"`
	Issues      []string `json:"issues"`
}

// Stats holds the word counter's output, stored under KeyStatistics.
type Stats struct {
	SubjectWords int    `json:"subject_word_count"`
	BodyWords    int    `json:"body_word_count"`
	TotalWords   int    `json:"total_word_count"`
	CalculatedAt string `json:"calculated_at"`
}

// Validation returns the validator's report if a step has written one.
func (d Draft) Validation() (Report, bool) {
	r, ok := d.Metadata[KeyValidation].(Report)
	return r, ok
}

// Statistics returns the word counter's stats if a step has written them.
func (d Draft) Statistics() (Stats, bool) {
	s, ok := d.Metadata[KeyStatistics].(Stats)
	return s, ok
}
