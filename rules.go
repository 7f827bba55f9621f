package jsonbuild

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/danderson/jsonbuild/wire"
)

// A Rule converts values of types that cannot implement [Marshaler],
// usually because they belong to another package.
type Rule struct {
	// Name identifies the rule in [Rules] listings and errors.
	Name string
	// Match reports whether the rule converts values of type t.
	// Pointers and interfaces have already been unwrapped, so t is
	// never a pointer or interface type.
	Match func(t reflect.Type) bool
	// Convert converts v, whose type satisfies Match.
	Convert wire.ConvertFunc
}

// RuleFor returns a Rule that converts values of exactly type T with
// fn. T must not be a pointer or interface type.
func RuleFor[T any](name string, fn func(e *wire.Encoder, v T) (wire.Node, error)) Rule {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		panic(fmt.Sprintf("RuleFor type %s must not be a pointer or interface", t))
	}
	return Rule{
		Name: name,
		Match: func(mt reflect.Type) bool {
			return mt == t
		},
		Convert: func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return fn(e, v.Interface().(T))
		},
	}
}

// The fixed dispatch steps that surround registered rules. See
// [Registry.Rules].
var (
	leadingSteps  = []string{"null", "pointer", "interface", "node", "marshaler", "scalar", "set", "sequence", "mapping"}
	trailingSteps = []string{"identifier", "bytes", "array", "fallback"}
)

// A Registry is an ordered set of conversion rules, and the
// converters derived from them.
//
// The zero Registry is not usable, create one with [NewRegistry]. A
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	rules []Rule

	// converters is replaced wholesale when rules change, so that
	// converters derived from the old rules are never used again.
	converters atomic.Pointer[cache[converter]]
}

var defaultRegistry = NewRegistry()

// NewRegistry returns a Registry holding the built-in rules.
func NewRegistry() *Registry {
	ret := &Registry{
		rules: slices.Clone(builtinRules),
	}
	ret.converters.Store(new(cache[converter]))
	return ret
}

// Register adds rules to the default registry. See
// [Registry.Register].
func Register(rules ...Rule) {
	defaultRegistry.Register(rules...)
}

// Rules lists the dispatch order of the default registry. See
// [Registry.Rules].
func Rules() []string {
	return defaultRegistry.Rules()
}

// Register adds rules after the existing ones. A value is converted
// by the first rule that matches its type, so rules registered later
// cannot override earlier ones.
func (r *Registry) Register(rules ...Rule) {
	for _, rule := range rules {
		if rule.Name == "" || rule.Match == nil || rule.Convert == nil {
			panic(fmt.Sprintf("invalid rule %+v: Name, Match and Convert are required", rule))
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rules...)
	r.converters.Store(new(cache[converter]))
}

// Rules returns the names of the dispatch steps applied by r, in the
// order they are tried.
func (r *Registry) Rules() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := slices.Clone(leadingSteps)
	for _, rule := range r.rules {
		ret = append(ret, rule.Name)
	}
	return append(ret, trailingSteps...)
}

// Marshal converts v to a wire document node using r. See the
// package documentation for the conversion applied to each type.
func (r *Registry) Marshal(v any) (wire.Node, error) {
	e := wire.Encoder{Mapper: r.converterFor}
	return e.Value(v)
}

func (r *Registry) ruleFor(t reflect.Type) (Rule, bool) {
	r.mu.Lock()
	rules := r.rules
	r.mu.Unlock()
	for _, rule := range rules {
		if rule.Match(t) {
			return rule, true
		}
	}
	return Rule{}, false
}
