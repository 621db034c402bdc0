package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mailkit/mailkit/mail"
)

func demoHeading(title string) {
	frame := strings.Repeat("=", 50)
	fmt.Println(frame)
	fmt.Println(title)
	fmt.Println(frame)
}

// cmdDemo runs canned drafts through the default pipeline: one full run per
// category, one streamed run, and an empty draft that fails validation.
func cmdDemo(args []string) int {
	rf := &runFlags{category: "other"}
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	fs.StringVar(&rf.config, "config", "", "path to a config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	a, err := newApp(ctx, rf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer a.close(ctx)

	p, err := a.pipeline("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	samples := []mail.Draft{
		mail.NewWithMetadata(
			"Project Update",
			"Here's the latest status on our project.",
			"manager@company.com",
			mail.CategoryBusiness,
			mail.Metadata{mail.KeySenderName: "Jane Smith"},
		),
		mail.New("Weekend plans", "Are you free for a hike on Saturday?", "sam.lee@example.com", mail.CategoryPersonal),
		mail.New("Cannot log in", "My password reset link never arrives.", "support@vendor.io", mail.CategorySupport),
		mail.New("Quick note", "Thanks again for the book recommendation.", "alex@example.com", mail.CategoryOther),
	}

	for _, draft := range samples {
		demoHeading("Category: " + string(draft.Category))
		final, _ := a.run(ctx, "default", p, draft)
		fmt.Println(final.Render())
		printSummary(final)
		fmt.Println()
	}

	streamed := streamAndFold(ctx, p, samples[0])
	demoHeading("Draft after streaming")
	fmt.Println(streamed.Render())
	fmt.Println()

	demoHeading("Draft with no recipient")
	failed, _ := a.run(ctx, "default", p, mail.New("", "", "", mail.CategoryOther))
	printSummary(failed)
	return 0
}
