package descriptor

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"typegraph/internal/match"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

// Resolver maps a textual type name to a handle.
type Resolver interface {
	// Resolve returns the handle for name, or an error matching ErrNotFound.
	Resolve(name string) (Type, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (Type, error)

func (f ResolverFunc) Resolve(name string) (Type, error) {
	return f(name)
}

// ChainResolvers returns a Resolver trying each resolver in order.
// Only ErrNotFound falls through to the next resolver.
func ChainResolvers(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(name string) (Type, error) {
		for _, r := range resolvers {
			t, err := r.Resolve(name)
			if err == nil {
				return t, nil
			}
			if !isNotFound(err) {
				return nil, err
			}
		}

		return nil, errorf(KindNotFound, "type %q", name)
	})
}

// Registry is a cache of canonical descriptors keyed by type handle, and a
// Resolver over every type registered in it.
//
// Registries are owned by the caller; nothing is shared between them.
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	nodes  map[Type]*Node
	names  map[string]Type
	simple map[string][]Type
	flight singleflight.Group

	metrics registryMetrics
}

type registryMetrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	registrations prometheus.Counter
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	registerer prometheus.Registerer
	namespace  string
}

// WithRegisterer registers the registry's counters on reg.
// Without it the counters are kept but not exported.
func WithRegisterer(reg prometheus.Registerer) RegistryOption {
	return func(o *registryOptions) {
		o.registerer = reg
	}
}

// WithMetricsNamespace sets the namespace of the exported counters.
func WithMetricsNamespace(ns string) RegistryOption {
	return func(o *registryOptions) {
		o.namespace = ns
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	options := registryOptions{namespace: "typegraph"}
	for _, opt := range opts {
		opt(&options)
	}

	factory := promauto.With(options.registerer)

	return &Registry{
		nodes:  make(map[Type]*Node),
		names:  make(map[string]Type),
		simple: make(map[string][]Type),
		metrics: registryMetrics{
			hits: factory.NewCounter(prometheus.CounterOpts{
				Namespace: options.namespace,
				Subsystem: "registry",
				Name:      "hits_total",
				Help:      "Descriptor lookups served from the registry.",
			}),
			misses: factory.NewCounter(prometheus.CounterOpts{
				Namespace: options.namespace,
				Subsystem: "registry",
				Name:      "misses_total",
				Help:      "Descriptor lookups that found no canonical descriptor.",
			}),
			registrations: factory.NewCounter(prometheus.CounterOpts{
				Namespace: options.namespace,
				Subsystem: "registry",
				Name:      "registrations_total",
				Help:      "Canonical descriptors stored in the registry.",
			}),
		},
	}
}

// RegisterType makes t resolvable by name without storing a descriptor.
func (r *Registry) RegisterType(t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.indexLocked(t)
}

func (r *Registry) indexLocked(t Type) {
	if _, ok := r.names[t.QualifiedName()]; ok {
		return
	}

	r.names[t.QualifiedName()] = t
	if rn := t.ReflectiveName(); rn != t.QualifiedName() {
		if _, taken := r.names[rn]; !taken {
			r.names[rn] = t
		}
	}
	r.simple[t.SimpleName()] = append(r.simple[t.SimpleName()], t)
}

// Register stores n as the canonical descriptor of its represented type.
// If one is already stored, it is kept and returned instead.
func (r *Registry) Register(n *Node) (*Node, error) {
	if n == nil {
		return nil, errorf(KindInvalidArgument, "nil descriptor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.nodes[n.represented]; ok {
		return existing, nil
	}

	r.nodes[n.represented] = n
	r.indexLocked(n.represented)
	r.metrics.registrations.Inc()

	return n, nil
}

// Lookup returns the canonical descriptor of t.
func (r *Registry) Lookup(t Type) (*Node, bool) {
	r.mu.RLock()
	n, ok := r.nodes[t]
	r.mu.RUnlock()

	if ok {
		r.metrics.hits.Inc()
	} else {
		r.metrics.misses.Inc()
	}

	return n, ok
}

// LoadOrCompute returns the canonical descriptor of t, computing and
// registering it with compute when absent. Concurrent calls for the same
// type share one computation.
func (r *Registry) LoadOrCompute(t Type, compute func(Type) (*Node, error)) (*Node, error) {
	if t == nil {
		return nil, errorf(KindInvalidArgument, "nil type")
	}

	if n, ok := r.Lookup(t); ok {
		return n, nil
	}

	// Handles of different kinds may share a qualified name.
	key := fmt.Sprintf("%T %s", t, t.QualifiedName())

	v, err, _ := r.flight.Do(key, func() (any, error) {
		r.mu.RLock()
		n, ok := r.nodes[t]
		r.mu.RUnlock()
		if ok {
			return n, nil
		}

		n, err := compute(t)
		if err != nil {
			return nil, err
		}
		if n == nil || n.represented != t {
			return nil, errorf(KindTypeMismatch, "computed descriptor does not represent %s", t.QualifiedName())
		}

		return r.Register(n)
	})
	if err != nil {
		return nil, err
	}

	return v.(*Node), nil
}

// Of returns the canonical plain descriptor of t: no treat-as type,
// overrides or children unless a richer one was registered first.
func (r *Registry) Of(t Type) (*Node, error) {
	return r.LoadOrCompute(t, func(t Type) (*Node, error) {
		return Make(t)
	})
}

// Resolve maps a qualified, reflective or unambiguous simple name to a
// registered type.
func (r *Registry) Resolve(name string) (Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.names[name]; ok {
		return t, nil
	}

	switch candidates := r.simple[name]; len(candidates) {
	case 0:
		if hint := r.suggest(name); hint != "" {
			return nil, errorf(KindNotFound, "type %q (did you mean %s?)", name, hint)
		}

		return nil, errorf(KindNotFound, "type %q", name)
	case 1:
		return candidates[0], nil
	default:
		return nil, errorf(KindNotFound, "type %q is ambiguous between %s", name, qualifiedNames(candidates))
	}
}

// Types returns every registered type, sorted by qualified name.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Type]struct{}, len(r.names))
	out := make([]Type, 0, len(r.names))
	for _, t := range r.names {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].QualifiedName() < out[j].QualifiedName()
	})

	return out
}

// suggest lists up to three registered names close to name. Callers hold
// r.mu.
func (r *Registry) suggest(name string) string {
	keys := make([]string, 0, len(r.names)+len(r.simple))
	for k := range r.names {
		keys = append(keys, k)
	}
	for k := range r.simple {
		keys = append(keys, k)
	}

	hints := match.Closest(name, keys, match.DefaultThreshold, 3)
	for i, h := range hints {
		hints[i] = strconv.Quote(h)
	}

	return strings.Join(hints, ", ")
}

func qualifiedNames(ts []Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.QualifiedName()
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

var builtinNames = []string{
	"bool", "string", "byte", "rune", "error", "any",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"float32", "float64", "complex64", "complex128",
}

var builtins = func() map[string]Type {
	m := make(map[string]Type)
	for _, name := range builtinNames {
		m[name] = Named("", name)
	}
	for _, t := range []TypeID{Pointer, Slice, Array, Map, Chan, Func, Struct, Interface} {
		m[t.Name] = t
	}

	return m
}()

// Builtins returns a Resolver for predeclared Go types and the builtin
// composite handles.
func Builtins() Resolver {
	return ResolverFunc(func(name string) (Type, error) {
		if t, ok := builtins[name]; ok {
			return t, nil
		}

		return nil, errorf(KindNotFound, "builtin type %q", name)
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
