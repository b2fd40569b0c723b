package voice

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/appointment-assistant/internal/observability/metrics"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

var navigationPattern = regexp.MustCompile(`Navigating to (/[a-z]+)\.\.\.$`)

const (
	msgBookMissing       = "Please specify both a provider and time for the appointment."
	msgCancelWhich       = "Which appointment would you like to cancel?"
	msgRescheduleMissing = "When would you like to reschedule your appointment to?"
	msgUnknown           = "I'm not sure what you want to do. Could you please rephrase that?"
)

// Result is the interpreter's structured answer. Navigate is set only for
// navigate commands; Message always carries the display text.
type Result struct {
	Command  Command
	Message  string
	Navigate string
}

// Interpreter maps utterances to commands and advisory responses. It never
// mutates appointment state.
type Interpreter struct {
	rules   []Rule
	metrics *metrics.SchedulingMetrics
	tracer  trace.Tracer
	logger  *logging.Logger
}

// Option customizes an Interpreter.
type Option func(*Interpreter)

// WithRules replaces the default rule list.
func WithRules(rules []Rule) Option {
	return func(i *Interpreter) {
		i.rules = rules
	}
}

// WithMetrics records classified intents.
func WithMetrics(mx *metrics.SchedulingMetrics) Option {
	return func(i *Interpreter) {
		i.metrics = mx
	}
}

// NewInterpreter creates an interpreter using DefaultRules.
func NewInterpreter(logger *logging.Logger, opts ...Option) *Interpreter {
	if logger == nil {
		logger = logging.Default()
	}
	i := &Interpreter{
		rules:  DefaultRules(),
		tracer: otel.Tracer("assistant.internal.voice"),
		logger: logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Classify runs the rules in order against the lower-cased text.
func (i *Interpreter) Classify(text string) Command {
	lower := strings.ToLower(text)
	for _, rule := range i.rules {
		if cmd, ok := rule.Match(lower); ok {
			return cmd
		}
	}
	return UnknownCommand{}
}

// Interpret classifies text and renders the response.
func (i *Interpreter) Interpret(ctx context.Context, text string) Result {
	_, span := i.tracer.Start(ctx, "voice.interpret", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	cmd := i.Classify(text)
	result := Respond(cmd)

	span.SetAttributes(attribute.String("assistant.intent", string(cmd.Intent())))
	i.metrics.ObserveCommand(string(cmd.Intent()))
	i.logger.Debug("voice command interpreted", "intent", cmd.Intent(), "parameters", cmd.Parameters())
	return result
}

// Handle returns only the display message for text.
func (i *Interpreter) Handle(ctx context.Context, text string) string {
	return i.Interpret(ctx, text).Message
}

// Respond renders the deterministic response for cmd.
func Respond(cmd Command) Result {
	result := Result{Command: cmd}
	switch c := cmd.(type) {
	case BookCommand:
		if c.ProviderName == "" || c.Time == "" {
			result.Message = msgBookMissing
			break
		}
		result.Message = fmt.Sprintf("I'll help you book an appointment with %s at %s%s. Should I proceed?",
			c.ProviderName, c.Time, optional(" on ", c.Date))
	case CancelCommand:
		if c.Time == "" {
			result.Message = msgCancelWhich
			break
		}
		result.Message = fmt.Sprintf("Are you sure you want to cancel your %s appointment?", c.Time)
	case RescheduleCommand:
		if c.NewTime == "" && c.NewDate == "" {
			result.Message = msgRescheduleMissing
			break
		}
		result.Message = fmt.Sprintf("I'll help you reschedule your appointment%s%s. Should I proceed?",
			optional(" to ", c.NewTime), optional(" on ", c.NewDate))
	case NavigateCommand:
		result.Message = fmt.Sprintf("Navigating to %s...", c.Route)
		result.Navigate = c.Route
	default:
		result.Command = UnknownCommand{}
		result.Message = msgUnknown
	}
	return result
}

// ParseNavigation extracts the route from a "Navigating to /x..." message.
func ParseNavigation(message string) (string, bool) {
	m := navigationPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func optional(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}
