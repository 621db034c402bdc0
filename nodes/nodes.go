package nodes

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mailkit/mailkit/mail"
	"github.com/mailkit/mailkit/util"
)

// Step names under which the built-in steps are registered. Pipeline
// definition files reference these.
const (
	StepFormatSubject    = "format_subject"
	StepAddGreeting      = "add_greeting"
	StepAddSignature     = "add_signature"
	StepValidateEmail    = "validate_email"
	StepCountWords       = "word_count"
	StepUppercaseSubject = "uppercase_subject"
)

const (
	maxSubjectRunes = 200
	maxBodyRunes    = 50000

	defaultSender = "Email Assistant"
)

// FormatSubject prefixes the subject according to the draft category.
// An empty subject is left alone.
func FormatSubject(ctx context.Context, d mail.Draft) mail.Update {
	if d.Subject == "" {
		return mail.Update{}
	}

	subject := d.Subject
	switch d.Category {
	case mail.CategoryBusiness:
		subject = "[BUSINESS] " + subject
	case mail.CategorySupport:
		subject = "[TICKET] " + subject
	case mail.CategoryPersonal:
		subject = "Personal: " + subject
	}
	return mail.Update{Subject: util.Ptr(subject)}
}

// AddGreeting prepends a category-specific greeting addressed to the
// recipient's display name.
func AddGreeting(ctx context.Context, d mail.Draft) mail.Update {
	name := displayName(d.Recipient)

	var greeting string
	switch d.Category {
	case mail.CategoryBusiness:
		greeting = "Dear " + name + ",\n\n"
	case mail.CategorySupport:
		greeting = "Hello " + name + ",\n\nThank you for contacting support.\n\n"
	case mail.CategoryPersonal:
		greeting = "Hi " + name + "!\n\n"
	default:
		greeting = "Hello " + name + ",\n\n"
	}
	return mail.Update{Body: util.Ptr(greeting + d.Body)}
}

// displayName derives a salutation from an address: the local part with
// dots replaced by spaces, title-cased per word. Addresses without an
// "@" fall back to "there".
func displayName(recipient string) string {
	if recipient == "" || !strings.Contains(recipient, "@") {
		return "there"
	}
	local := strings.SplitN(recipient, "@", 2)[0]
	return cases.Title(language.English).String(strings.ReplaceAll(local, ".", " "))
}

// AddSignature appends a category-specific signature block. The sender
// name comes from metadata when present, otherwise a stock default.
func AddSignature(ctx context.Context, d mail.Draft) mail.Update {
	sender := defaultSender
	if s, ok := d.Metadata[mail.KeySenderName].(string); ok {
		sender = s
	}

	var signature string
	switch d.Category {
	case mail.CategoryBusiness:
		signature = "\n\nBest regards,\n" + sender + "\n" + time.Now().Format("2006-01-02")
	case mail.CategorySupport:
		signature = "\n\nSincerely,\n" + sender + "\nSupport Team"
	case mail.CategoryPersonal:
		signature = "\n\nCheers,\n" + sender
	default:
		signature = "\n\nRegards,\n" + sender
	}
	return mail.Update{Body: util.Ptr(d.Body + signature)}
}

// ValidateEmail records a validation report in metadata. Recipient
// problems fail the draft; missing or oversized subject and body are
// reported as issues without failing it.
func ValidateEmail(ctx context.Context, d mail.Draft) mail.Update {
	rep := mail.Report{
		ValidatedAt: time.Now().Format(time.RFC3339),
		Passed:      true,
		Issues:      []string{},
	}

	if d.Recipient == "" {
		rep.Passed = false
		rep.Issues = append(rep.Issues, "Missing recipient")
	} else if !strings.Contains(d.Recipient, "@") {
		rep.Passed = false
		rep.Issues = append(rep.Issues, "Invalid recipient email format")
	}

	if d.Subject == "" {
		rep.Issues = append(rep.Issues, "Missing subject")
	}
	if d.Body == "" {
		rep.Issues = append(rep.Issues, "Missing body")
	}
	if utf8.RuneCountInString(d.Subject) > maxSubjectRunes {
		rep.Issues = append(rep.Issues, "Subject too long (>200 chars)")
	}
	if utf8.RuneCountInString(d.Body) > maxBodyRunes {
		rep.Issues = append(rep.Issues, "Body too long (>50000 chars)")
	}

	md := d.Metadata.Clone()
	md[mail.KeyValidation] = rep
	return mail.Update{Metadata: md}
}

// CountWords records word count statistics in metadata. Words are runs
// of non-whitespace characters.
func CountWords(ctx context.Context, d mail.Draft) mail.Update {
	subjectWords := len(strings.Fields(d.Subject))
	bodyWords := len(strings.Fields(d.Body))

	md := d.Metadata.Clone()
	md[mail.KeyStatistics] = mail.Stats{
		SubjectWords: subjectWords,
		BodyWords:    bodyWords,
		TotalWords:   subjectWords + bodyWords,
		CalculatedAt: time.Now().Format(time.RFC3339),
	}
	return mail.Update{Metadata: md}
}

// UppercaseSubject uppercases the subject. It is not part of the default
// pipeline; it exists as a building block for custom definitions.
func UppercaseSubject(ctx context.Context, d mail.Draft) mail.Update {
	if d.Subject == "" {
		return mail.Update{}
	}
	return mail.Update{Subject: util.Ptr(strings.ToUpper(d.Subject))}
}
