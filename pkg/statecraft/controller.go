package statecraft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
	"github.com/randalmurphal/statecraft/pkg/statecraft/expr"
	"github.com/randalmurphal/statecraft/pkg/statecraft/observability"
	"github.com/randalmurphal/statecraft/pkg/statecraft/registry"
	"github.com/randalmurphal/statecraft/pkg/statecraft/store"
	"github.com/randalmurphal/statecraft/pkg/statecraft/template"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidDefinition indicates a command definition was rejected.
var ErrInvalidDefinition = errors.New("invalid definition")

// Normalize canonicalizes a command name: lower case, with underscores and
// dashes treated as spaces and runs of whitespace collapsed.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// ControllerTypeOption configures a ControllerType.
type ControllerTypeOption func(*ControllerType)

// WithUnitKind sets whether the controller holds commands or actions.
// Default: KindCommand.
func WithUnitKind(k Kind) ControllerTypeOption {
	return func(t *ControllerType) {
		t.kind = k
	}
}

// WithPredicateMethods resolves Method predicates on definitions.
func WithPredicateMethods(m PredicateMethods) ControllerTypeOption {
	return func(t *ControllerType) {
		t.methods = m
	}
}

// WithConditions sets the compiler LoadManifest uses for if and unless
// conditions, typically one carrying custom operators. Default: expr's
// built-in operators only.
func WithConditions(c *expr.Compiler) ControllerTypeOption {
	return func(t *ControllerType) {
		if c != nil {
			t.conditions = c
		}
	}
}

// WithExampleVars adds placeholders available to command examples besides
// $COMMAND and $ACTION.
func WithExampleVars(vars template.Vars) ControllerTypeOption {
	return func(t *ControllerType) {
		maps.Copy(t.exampleVars, vars)
	}
}

// ControllerType is the command table shared by every Controller created
// from it. Build it once with NewControllerType and Command.
//
// Example:
//
//	flight := statecraft.NewControllerType("FlightController").
//	    Command("taxi", taxi).
//	    Command("take off", takeOff,
//	        statecraft.Aliases("launch"),
//	        statecraft.If(statecraft.OnState(isLanded)))
type ControllerType struct {
	name    string
	kind    Kind
	methods PredicateMethods
	defs    *registry.Registry[string, *Definition]
	index   *registry.Registry[string, *Definition]

	conditions  *expr.Compiler
	exampleVars template.Vars
	examples    *template.Interpolator
}

// NewControllerType creates an empty command table.
// Panics if name is empty.
func NewControllerType(name string, opts ...ControllerTypeOption) *ControllerType {
	if name == "" {
		panic("statecraft: controller name cannot be empty")
	}
	t := &ControllerType{
		name:        name,
		defs:        registry.New[string, *Definition](),
		index:       registry.New[string, *Definition](),
		conditions:  expr.New(),
		exampleVars: template.Vars{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.examples = newExampleInterpolator(t.exampleVars)
	return t
}

func newExampleInterpolator(vars template.Vars) *template.Interpolator {
	return template.New(template.WithDefaults(vars), template.WithMissing(template.MissingError))
}

// Command defines a command and returns t for chaining.
//
// Panics if:
//   - name is empty
//   - class is nil or of another unit kind
//   - the name or an alias is already taken
func (t *ControllerType) Command(name string, class *Class, opts ...DefinitionOption) *ControllerType {
	if _, err := t.Define(name, class, opts...); err != nil {
		panic("statecraft: " + err.Error())
	}
	return t
}

// Define is Command returning an error instead of panicking. The error
// wraps ErrInvalidDefinition.
func (t *ControllerType) Define(name string, class *Class, opts ...DefinitionOption) (*Definition, error) {
	key := Normalize(name)
	if key == "" {
		return nil, fmt.Errorf("%w: %s name cannot be empty", ErrInvalidDefinition, t.kind)
	}
	if class == nil {
		return nil, fmt.Errorf("%w: %s %q has nil class", ErrInvalidDefinition, t.kind, key)
	}
	if class.Kind() != t.kind {
		return nil, fmt.Errorf("%w: %s %q is %s class %q", ErrInvalidDefinition, t.kind, key, class.Kind(), class.Name())
	}

	for i, ex := range class.Properties().Examples {
		if _, err := t.renderExample(key, ex); err != nil {
			return nil, fmt.Errorf("%w: %s %q example %d: %v", ErrInvalidDefinition, t.kind, key, i, err)
		}
	}

	d := newDefinition(key, class, opts)
	for _, alias := range d.Aliases {
		if existing, taken := t.index.Get(alias); taken {
			return nil, fmt.Errorf("%w: alias %q of %q already used by %q", ErrInvalidDefinition, alias, key, existing.Name)
		}
	}
	if err := t.defs.Add(key, d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	for _, alias := range d.Aliases {
		t.index.Register(alias, d)
	}
	return d, nil
}

// Extend creates a controller type that starts with every definition of t.
// Commands defined on either afterwards are not shared. The kind and
// predicate methods carry over unless opts override them.
func (t *ControllerType) Extend(name string, opts ...ControllerTypeOption) *ControllerType {
	if name == "" {
		panic("statecraft: controller name cannot be empty")
	}
	child := &ControllerType{
		name:        name,
		kind:        t.kind,
		methods:     t.methods,
		defs:        t.defs.Clone(),
		index:       t.index.Clone(),
		conditions:  t.conditions,
		exampleVars: maps.Clone(t.exampleVars),
	}
	for _, opt := range opts {
		opt(child)
	}
	child.examples = newExampleInterpolator(child.exampleVars)
	if child.kind != t.kind {
		panic(fmt.Sprintf("statecraft: %s controller %q cannot extend %s controller %q", child.kind, name, t.kind, t.name))
	}
	return child
}

// Remove deletes a definition and its aliases. name may be any alias.
// Returns false if nothing is defined under name.
func (t *ControllerType) Remove(name string) bool {
	d, ok := t.Lookup(name)
	if !ok {
		return false
	}
	t.defs.Delete(d.Name)
	for _, alias := range d.Aliases {
		t.index.Delete(alias)
	}
	return true
}

// Name returns the controller name.
func (t *ControllerType) Name() string {
	return t.name
}

// Kind returns the unit kind the controller holds.
func (t *ControllerType) Kind() Kind {
	return t.kind
}

// Lookup resolves a name or alias.
func (t *ControllerType) Lookup(name string) (*Definition, bool) {
	return t.index.Get(Normalize(name))
}

// Definitions returns every definition in declaration order.
func (t *ControllerType) Definitions() []*Definition {
	return t.defs.Values()
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller's logger. Default: slog.Default(). Execute
// adds the controller and command attributes itself.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) ControllerOption {
	return func(c *Controller) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing sets the span manager. Default: observability.NoopSpanManager.
func WithTracing(s observability.SpanManager) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithEvents publishes lifecycle events to d after every Execute.
func WithEvents(d *event.Dispatcher) ControllerOption {
	return func(c *Controller) {
		c.events = d
	}
}

// WithUnitOptions sets the options every unit is instantiated with.
func WithUnitOptions(options map[string]any) ControllerOption {
	return func(c *Controller) {
		c.unitOptions = maps.Clone(options)
	}
}

// Controller executes commands from its ControllerType against a state
// source and channel.
type Controller struct {
	typ         *ControllerType
	state       StateSource
	channel     Channel
	unitOptions map[string]any

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	events  *event.Dispatcher
}

// New creates a controller. state and channel are handed to every unit.
func (t *ControllerType) New(state StateSource, channel Channel, opts ...ControllerOption) *Controller {
	c := &Controller{
		typ:     t,
		state:   state,
		channel: channel,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the controller's command table.
func (c *Controller) Type() *ControllerType {
	return c.typ
}

// State returns the current state.
func (c *Controller) State() store.Snapshot {
	if c.state == nil {
		return store.Snapshot{}
	}
	return c.state.State()
}

func (c *Controller) scope() Scope {
	return Scope{State: c.State(), Methods: c.typ.methods, Owner: c.typ.name}
}

// CommandInfo describes an available command.
type CommandInfo struct {
	Name        string
	Class       string
	Aliases     []string
	Description string
	Arguments   []Argument
	Keywords    []Keyword
	Examples    []Example
	Metadata    map[string]any
}

// AvailableCommands returns the commands whose guards pass in the current
// state, keyed by name. Secret commands are never listed. $COMMAND and
// $ACTION in examples are replaced by the command name.
func (c *Controller) AvailableCommands() (map[string]CommandInfo, error) {
	s := c.scope()
	out := make(map[string]CommandInfo)
	var err error
	c.typ.defs.Range(func(name string, d *Definition) bool {
		if d.Secret {
			return true
		}
		var ok bool
		if ok, err = d.Available(s); err != nil {
			err = fmt.Errorf("availability of %q: %w", name, err)
			return false
		}
		if ok {
			out[name] = c.typ.describe(d)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableNames returns the sorted names of AvailableCommands.
func (c *Controller) AvailableNames() ([]string, error) {
	cmds, err := c.AvailableCommands()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(cmds)), nil
}

func (t *ControllerType) describe(d *Definition) CommandInfo {
	p := d.Properties()
	examples := make([]Example, len(p.Examples))
	for i, ex := range p.Examples {
		// Define already rejected examples that fail to render.
		examples[i], _ = t.renderExample(d.Name, ex)
	}
	keywords := make([]Keyword, 0, len(p.Keywords))
	for _, name := range p.KeywordNames() {
		keywords = append(keywords, p.Keywords[name])
	}
	return CommandInfo{
		Name:        d.Name,
		Class:       d.Class.Name(),
		Aliases:     slices.Clone(d.Aliases),
		Description: p.Description,
		Arguments:   p.Arguments,
		Keywords:    keywords,
		Examples:    examples,
		Metadata:    maps.Clone(d.Metadata),
	}
}

// renderExample replaces the placeholders in an example's command and
// description. Unknown placeholders are an error.
func (t *ControllerType) renderExample(name string, ex Example) (Example, error) {
	vars := template.Vars{"COMMAND": name, "ACTION": name}
	out, err := t.examples.RenderAll([]string{ex.Command, ex.Description}, vars)
	if err != nil {
		return ex, err
	}
	ex.Command, ex.Description = out[0], out[1]
	return ex, nil
}

// Execute resolves name and runs the command:
//
//  1. an unknown name fails with invalid_command
//  2. a failing guard fails with unavailable_command, or invalid_command
//     when the definition is secret
//  3. a signature mismatch fails with the violations plus
//     invalid_arguments
//  4. otherwise a unit is instantiated and called
//
// Resolution and validation failures are reported in the Result. The error
// is non-nil only when a predicate, hook or lifecycle listener fails, or a
// unit panics. Action controllers use the action_ error kinds and
// metadata keys.
func (c *Controller) Execute(ctx context.Context, name string, args []any, kwargs map[string]any) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	kind := c.typ.kind
	key := Normalize(name)
	elapsed := observability.TimedOperation()

	d, ok := c.typ.Lookup(key)
	resolved := key
	if ok {
		resolved = d.Name
	}
	ctx, span := c.spans.StartCommandSpan(ctx, c.typ.name, resolved)
	logger := observability.EnrichLogger(c.logger, c.typ.name, resolved)

	if !ok {
		res := Fail(kind.InvalidError(), map[string]any{"name": name}).
			Tag(kind.MetaKey("name"), name).
			Tag(MetaController, c.typ.name)
		return c.reject(ctx, span, logger, key, res, kind.InvalidError())
	}

	available, err := d.Available(c.scope())
	if err != nil {
		c.spans.EndSpanWithError(span, err)
		return nil, fmt.Errorf("availability of %q: %w", d.Name, err)
	}
	if !available {
		reason := kind.UnavailableError()
		if d.Secret {
			reason = kind.InvalidError()
		}
		res := Fail(reason, map[string]any{"name": d.Name}).
			Tag(kind.MetaKey("name"), d.Name).
			Tag(MetaController, c.typ.name)
		return c.reject(ctx, span, logger, d.Name, res, reason)
	}

	if ok, res := d.Signature().Match(args, kwargs); !ok {
		res.AddError(screrrors.KindInvalidArguments, map[string]any{
			MetaArguments: args,
			MetaKeywords:  kwargs,
		})
		c.tag(res, d, args, kwargs)
		return c.reject(ctx, span, logger, d.Name, res, screrrors.KindInvalidArguments)
	}

	c.spans.AddSpanEvent(ctx, "statecraft.signature.matched",
		attribute.Int("arguments", len(args)),
		attribute.Int("keywords", len(kwargs)),
	)
	observability.LogCommandStart(logger, len(args), slices.Sorted(maps.Keys(kwargs)))

	unit := d.Class.New(c.state, c.channel, c.unitOptions).WithLogger(logger).WithTracing(c.spans)
	res, err := unit.Call(ctx, args, kwargs)
	c.tag(res, d, args, kwargs)

	duration := elapsed()
	success := err == nil && res.Success()
	c.metrics.RecordCommandExecution(ctx, c.typ.name, d.Name, time.Duration(duration*float64(time.Millisecond)), success)
	observability.LogCommandComplete(logger, duration, success, res.Errors.Kinds())
	c.spans.EndSpanWithError(span, errors.Join(err, res.Err()))

	if pubErr := c.publishExecuted(ctx, d, res); pubErr != nil {
		err = errors.Join(err, pubErr)
	}
	return res, err
}

func (c *Controller) tag(res *Result, d *Definition, args []any, kwargs map[string]any) {
	kind := c.typ.kind
	res.TagAll(map[string]any{
		kind.MetaKey("class"): d.Class.Name(),
		kind.MetaKey("name"):  d.Name,
		MetaController:        c.typ.name,
		MetaArguments:         args,
		MetaKeywords:          kwargs,
	})
}

func (c *Controller) reject(ctx context.Context, span trace.Span, logger *slog.Logger, name string, res *Result, reason string) (*Result, error) {
	observability.LogCommandRejected(logger, reason)
	c.metrics.RecordCommandRejection(ctx, c.typ.name, name, reason)
	c.spans.EndSpanWithError(span, res.Err())
	return res, c.publishRejected(ctx, name, reason, res)
}
