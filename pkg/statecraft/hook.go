package statecraft

// Stage is the point in the pipeline a hook runs at.
type Stage int

const (
	// StageBefore hooks run before processing.
	StageBefore Stage = iota
	// StageAfter hooks run after processing.
	StageAfter
)

// String returns "before" or "after".
func (s Stage) String() string {
	if s == StageAfter {
		return "after"
	}
	return "before"
}

// Status filters hooks by the in-flight Result's outcome.
type Status int

const (
	// StatusAny fires regardless of outcome.
	StatusAny Status = iota
	// StatusSuccess fires only on a successful Result.
	StatusSuccess
	// StatusFailure fires only on a failing Result.
	StatusFailure
)

func (s Status) matches(r *Result) bool {
	switch s {
	case StatusSuccess:
		return r.Success()
	case StatusFailure:
		return r.Failure()
	default:
		return true
	}
}

// HookFunc is a hook body. Its error aborts the invocation.
type HookFunc func(x *Execution) error

// Hook is one registered before or after hook.
type Hook struct {
	Stage  Stage
	Status Status
	Body   HookFunc
	guards guards
}

// HookOption configures a hook registration.
type HookOption interface {
	applyHook(*Hook)
}

type hookOptionFunc func(*Hook)

func (f hookOptionFunc) applyHook(h *Hook) { f(h) }

func (g Guard) applyHook(h *Hook) { h.guards.add(g) }

// OnSuccess fires the hook only when the Result is successful.
func OnSuccess() HookOption {
	return hookOptionFunc(func(h *Hook) { h.Status = StatusSuccess })
}

// OnFailure fires the hook only when the Result is failing.
func OnFailure() HookOption {
	return hookOptionFunc(func(h *Hook) { h.Status = StatusFailure })
}

// Before registers a hook that runs before processing.
// Panics if body is nil.
func Before(body HookFunc, opts ...HookOption) ClassOption {
	return hookOption(StageBefore, body, opts)
}

// After registers a hook that runs after processing.
// Panics if body is nil.
func After(body HookFunc, opts ...HookOption) ClassOption {
	return hookOption(StageAfter, body, opts)
}

func hookOption(stage Stage, body HookFunc, opts []HookOption) ClassOption {
	if body == nil {
		panic("statecraft: hook body cannot be nil")
	}
	h := Hook{Stage: stage, Body: body}
	for _, opt := range opts {
		opt.applyHook(&h)
	}
	return func(c *Class) {
		if stage == StageBefore {
			c.before = append(c.before, h)
		} else {
			c.after = append(c.after, h)
		}
	}
}

// fires reports whether h should run for the execution's current Result.
func (h Hook) fires(x *Execution) (bool, error) {
	if !h.Status.matches(x.Result) {
		return false, nil
	}
	return h.guards.allow(x.scope())
}
