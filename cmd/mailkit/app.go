package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/mailkit/mailkit/graph"
	"github.com/mailkit/mailkit/logger"
	"github.com/mailkit/mailkit/mail"
	"github.com/mailkit/mailkit/nodes"
	"github.com/mailkit/mailkit/observability"
	"github.com/mailkit/mailkit/util"
	"github.com/mailkit/mailkit/validation"
	"github.com/mailkit/mailkit/version"
)

// runFlags holds the flag values shared by the draft and stream commands.
type runFlags struct {
	subject  string
	body     string
	to       string
	category string
	sender   string
	pipeline string
	config   string
	runID    string
	timing   bool
}

func newRunFlagSet(name string, rf *runFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&rf.subject, "subject", "s", "", "draft subject line")
	fs.StringVarP(&rf.body, "body", "b", "", "draft body text")
	fs.StringVarP(&rf.to, "to", "t", "", "recipient email address")
	fs.StringVarP(&rf.category, "category", "c", "other", "email category")
	fs.StringVarP(&rf.pipeline, "pipeline", "p", "", "named pipeline definition")
	fs.StringVar(&rf.sender, "sender", "", "sender name for the signature")
	fs.StringVar(&rf.config, "config", "", "path to a config file")
	fs.StringVar(&rf.runID, "run-id", "", "correlation ID for this run")
	fs.BoolVar(&rf.timing, "timing", false, "print per step timings")
	return fs
}

// draftRequest is the advisory shape of the draft flags. Recipient is only
// warned about when it does not look like an email address; the pipeline's
// validator step owns the real judgement so a bad address still flows
// through the run.
type draftRequest struct {
	Recipient string `json:"to" validate:"omitempty,email"`
}

func recipientWarning(to string) string {
	if err := validation.Validate(&draftRequest{Recipient: to}); err != nil {
		return fmt.Sprintf("recipient %q does not look like an email address", to)
	}
	return ""
}

// validateRunFlags checks the flag values that feed the pipeline. The
// pipeline name is restricted to filename-safe characters because it is
// joined into definition file paths.
func validateRunFlags(rf *runFlags) error {
	_, catErr := mail.ParseCategory(rf.category)

	allowed := make([]string, 0, len(mail.Categories()))
	for _, c := range mail.Categories() {
		allowed = append(allowed, string(c))
	}

	if verr := validation.New().
		Custom(catErr == nil, "category", "must be one of: "+strings.Join(allowed, ", ")).
		Pattern("pipeline", rf.pipeline, `^[A-Za-z0-9._-]+$`).
		Validate(); verr != nil {
		return verr
	}
	return nil
}

// app wires configuration, logging, observability and the step registry
// for a single CLI invocation.
type app struct {
	cfg       *AppConfig
	log       *logger.Logger
	reg       *graph.Registry[mail.Draft, mail.Update]
	metrics   *observability.Metrics
	tracing   bool
	runID     string
	shutdowns []func(context.Context) error
}

func newApp(ctx context.Context, rf *runFlags) (*app, error) {
	cfg, err := loadConfig(rf.config)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	runID := rf.runID
	if runID == "" {
		runID = uuid.NewString()
	} else if _, err := validation.ValidateUUID("run-id", runID); err != nil {
		return nil, err
	}
	a.runID = runID

	base := logger.Init(cfg.Logging, serviceName)
	a.log = base.WithFields(logger.Fields(logger.FieldRunID, runID))

	a.reg = graph.NewRegistry[mail.Draft, mail.Update]()
	nodes.Register(a.reg)

	if cfg.Observability.Tracing.Enabled {
		tc := observability.DefaultTracerConfig(serviceName)
		tc.ServiceVersion = version.Get().Version
		tc.Environment = cfg.Base.Environment
		tc.Endpoint = cfg.Observability.Tracing.Endpoint
		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		a.tracing = true
		a.shutdowns = append(a.shutdowns, tp.Shutdown)
	}

	if cfg.Observability.Metrics.Enabled {
		mc := observability.DefaultMeterConfig(serviceName)
		mc.ServiceVersion = version.Get().Version
		mc.Environment = cfg.Base.Environment
		mc.Endpoint = cfg.Observability.Metrics.Endpoint
		mp, err := observability.InitMeter(ctx, mc)
		if err != nil {
			return nil, fmt.Errorf("init meter: %w", err)
		}
		a.shutdowns = append(a.shutdowns, mp.Shutdown)

		m, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return nil, fmt.Errorf("init metrics: %w", err)
		}
		a.metrics = m
	}

	a.instrument()
	return a, nil
}

// instrument wraps every registered step with the enabled observability
// decorators so named pipelines pick them up as well.
func (a *app) instrument() {
	for _, name := range a.reg.List() {
		fn, _ := a.reg.Get(name)
		if a.tracing {
			fn = graph.WithTracing(name, fn)
		}
		if a.metrics != nil {
			fn = graph.WithMetrics(name, a.metrics, fn)
		}
		fn = graph.WithLogging(name, a.log, fn)
		a.reg.Register(name, fn)
	}
}

func (a *app) close(ctx context.Context) {
	for _, shutdown := range a.shutdowns {
		if err := shutdown(ctx); err != nil {
			a.log.Warn("observability shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}
}

// pipeline resolves the pipeline to run. An empty name means the default
// drafting pipeline; otherwise the definition is searched in the configured
// pipelines directory and next to the binary's config.
func (a *app) pipeline(name string) (*graph.Pipeline[mail.Draft, mail.Update], error) {
	def := &graph.Definition{Name: "default", Steps: nodes.DefaultSteps()}
	if name != "" {
		found, err := graph.FindDefinition(name, a.cfg.Pipelines.Dir, filepath.Join("cmd", serviceName, "pipelines"))
		if err != nil {
			return nil, err
		}
		def = found
	}
	return graph.Build(def, a.reg, mail.Apply)
}

// newDraft builds the initial draft from the run flags. The sender name from
// the flags wins over the configured default; when neither is set the
// signature step falls back on its own.
func (a *app) newDraft(rf *runFlags) mail.Draft {
	cat, _ := mail.ParseCategory(rf.category)

	md := mail.Metadata{}
	if sender := util.Coalesce(rf.sender, a.cfg.Sender.Name); sender != "" {
		md[mail.KeySenderName] = sender
	}
	return mail.NewWithMetadata(rf.subject, rf.body, rf.to, cat, md)
}

// run executes the pipeline with tracing and metrics around the whole run.
func (a *app) run(ctx context.Context, name string, p *graph.Pipeline[mail.Draft, mail.Update], initial mail.Draft) (mail.Draft, *graph.Trace) {
	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	observability.SetSpanAttribute(ctx, "pipeline.name", name)
	observability.SetSpanAttribute(ctx, "run.id", a.runID)

	final, trace := p.Trace(ctx, initial)

	if a.metrics != nil {
		a.metrics.RecordRun(ctx, name, trace.Duration)
	}
	a.log.Info("pipeline completed", logger.Fields(
		logger.FieldPipeline, name,
		logger.FieldDuration, trace.Duration.Milliseconds(),
		"steps", len(trace.Steps),
	))
	return final, trace
}

func pipelineName(rf *runFlags) string {
	if rf.pipeline != "" {
		return rf.pipeline
	}
	return "default"
}

func printTimings(trace *graph.Trace) {
	fmt.Println("Timings:")
	for _, step := range trace.Steps {
		fmt.Printf("  %-20s %s\n", step.Node, step.Duration)
	}
	fmt.Printf("  %-20s %s\n", "total", trace.Duration)
}

func printSummary(d mail.Draft) {
	if rep, ok := d.Validation(); ok {
		if rep.Passed {
			fmt.Println("Validation: passed")
		} else {
			fmt.Println("Validation: failed")
		}
		for _, issue := range rep.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}
	if stats, ok := d.Statistics(); ok {
		fmt.Printf("Words: %d subject, %d body, %d total\n",
			stats.SubjectWords, stats.BodyWords, stats.TotalWords)
	}
}

// streamAndFold consumes the stream one update at a time, printing each one
// and folding it into the running draft.
func streamAndFold(ctx context.Context, p *graph.Pipeline[mail.Draft, mail.Update], initial mail.Draft) mail.Draft {
	frame := strings.Repeat("=", 50)
	fmt.Println(frame)
	fmt.Println("Streaming pipeline run")
	fmt.Println(frame)

	final := initial
	stream := p.Stream(ctx, initial)
	for {
		nu, ok := stream.Next()
		if !ok {
			break
		}
		fmt.Printf("Node: %s\n", nu.Node)
		fmt.Printf("Update: %s\n", nu.Update)
		fmt.Println(strings.Repeat("-", 30))
		final = mail.Apply(final, nu.Update)
	}
	return final
}

func cmdDraft(args []string) int {
	rf := &runFlags{}
	fs := newRunFlagSet("draft", rf)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := validateRunFlags(rf); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flags: %s\n", err)
		return 2
	}
	if w := recipientWarning(rf.to); w != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	ctx := context.Background()
	a, err := newApp(ctx, rf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer a.close(ctx)

	p, err := a.pipeline(rf.pipeline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	final, trace := a.run(ctx, pipelineName(rf), p, a.newDraft(rf))

	fmt.Println(final.Render())
	printSummary(final)
	if rf.timing {
		printTimings(trace)
	}
	return 0
}

func cmdStream(args []string) int {
	rf := &runFlags{}
	fs := newRunFlagSet("stream", rf)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := validateRunFlags(rf); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flags: %s\n", err)
		return 2
	}
	if w := recipientWarning(rf.to); w != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	ctx := context.Background()
	a, err := newApp(ctx, rf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer a.close(ctx)

	p, err := a.pipeline(rf.pipeline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	final := streamAndFold(ctx, p, a.newDraft(rf))

	fmt.Println(final.Render())
	printSummary(final)
	return 0
}

func cmdSteps(args []string) int {
	rf := &runFlags{}
	fs := newRunFlagSet("steps", rf)
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

	fmt.Println("Registered steps:")
	for _, name := range a.reg.List() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	fmt.Println("Default pipeline:")
	fmt.Printf("  %s\n", strings.Join(nodes.DefaultSteps(), " -> "))
	return 0
}
