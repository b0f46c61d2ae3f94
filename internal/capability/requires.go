package capability

import (
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// Option configures Require and Requires.
type Option func(*options)

type options struct {
	verbose bool
	logger  *log.Logger
	name    string
}

// WithVerbose controls whether a skipped call emits diagnostics. Defaults to
// true.
func WithVerbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}

// WithLogger sets the diagnostic sink. Defaults to a logger on stdout.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithName overrides the operation name reported when a call is skipped.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func newOptions(opts []Option) options {
	o := options{verbose: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(os.Stdout, log.Options{Prefix: "requires"})
	}
	return o
}

// Requirement is the frozen outcome of probing a set of capabilities once.
type Requirement struct {
	names     []string
	available []bool
	opts      options
}

// Require probes every name exactly once and freezes the results. A
// capability that becomes available later does not change the outcome.
func Require(reg *Registry, names []string, opts ...Option) *Requirement {
	req := &Requirement{
		names:     append([]string(nil), names...),
		available: make([]bool, len(names)),
		opts:      newOptions(opts),
	}
	for i, name := range names {
		req.available[i], _ = reg.Probe(name)
	}
	return req
}

// Satisfied reports whether every required capability resolved.
func (r *Requirement) Satisfied() bool {
	for _, ok := range r.available {
		if !ok {
			return false
		}
	}
	return true
}

// Missing returns the names that did not resolve, in declaration order.
func (r *Requirement) Missing() []string {
	var missing []string
	for i, ok := range r.available {
		if !ok {
			missing = append(missing, r.names[i])
		}
	}
	return missing
}

// Run calls fn when the requirement is satisfied. Otherwise it reports the
// skip under name and returns false.
func (r *Requirement) Run(name string, fn func()) bool {
	if !r.Satisfied() {
		r.report(name)
		return false
	}
	fn()
	return true
}

func (r *Requirement) report(op string) {
	if !r.opts.verbose {
		return
	}
	if r.opts.name != "" {
		op = r.opts.name
	}
	r.opts.logger.Warnf("missing dependencies: %v", r.Missing())
	r.opts.logger.Warnf("not running %s", op)
}

// Wrap returns op unchanged when req is satisfied. Otherwise it returns a
// function of the same type that returns zero values and reports the skip.
// F must be a function type.
func Wrap[F any](req *Requirement, op F) F {
	if req.Satisfied() {
		return op
	}

	ft := reflect.TypeFor[F]()
	if ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("capability.Wrap: %s is not a function type", ft))
	}
	name := funcName(op)

	substitute := reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		req.report(name)
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		return out
	})
	return substitute.Interface().(F)
}

// Requires returns a decorator that probes names when applied and wraps the
// operation with Wrap.
//
//	area := capability.Requires[func(float64) float64](reg, []string{"numpy"})(area)
func Requires[F any](reg *Registry, names []string, opts ...Option) func(op F) F {
	return func(op F) F {
		return Wrap(Require(reg, names, opts...), op)
	}
}

// funcName returns the unqualified name of a function value, e.g. "f" for
// pkg.f and "TestX.func1" for a closure.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "<unknown>"
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
