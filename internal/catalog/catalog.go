package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"typegraph/descriptor"
	"typegraph/internal/analyze"
	"typegraph/internal/ctxlog"
	"typegraph/internal/diagnostic"
)

// Catalog holds the frozen descriptors of a catalog file.
type Catalog struct {
	names []string
	nodes map[string]*descriptor.Node
	diags diagnostic.Diagnostics
}

// Names returns the entry names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Lookup returns the descriptor of the named entry.
func (c *Catalog) Lookup(name string) (*descriptor.Node, bool) {
	n, ok := c.nodes[name]
	return n, ok
}

// Diagnostics returns the non-fatal diagnostics reported while the catalog
// was opened.
func (c *Catalog) Diagnostics() diagnostic.Diagnostics {
	return c.diags
}

// Open loads the catalog file at path, describes the packages it lists
// (relative to the file's directory) and builds its descriptors.
func Open(ctx context.Context, path string) (*Catalog, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	resolver := descriptor.Builtins()

	var diags diagnostic.Diagnostics
	if len(f.Packages) > 0 {
		a := analyze.NewAnalyzer(analyze.WithDir(filepath.Dir(path)))

		graph, err := a.LoadPackages(ctx, f.Packages...)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog packages: %w", err)
		}

		resolver = descriptor.ChainResolvers(resolver, graph.Registry)
		diags.Merge(graph.Diagnostics)
	}

	c, err := Build(ctx, f, resolver)
	if err != nil {
		return nil, err
	}

	c.diags = diags
	c.diags.Log(ctx)

	return c, nil
}

// Build stages every entry of f and freezes them together, so references
// between entries become shared nodes and recursive references become cycles.
func Build(ctx context.Context, f *File, resolver descriptor.Resolver) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	b := &builder{
		resolver: resolver,
		staged:   make(map[string]*descriptor.Builder, len(f.Entries)),
	}

	roots := make([]*descriptor.Builder, 0, len(f.Entries))
	for _, e := range f.Entries {
		if _, dup := b.staged[e.Name]; dup {
			b.diags.AddError(diagnostic.CodeDuplicateEntry, "entry is declared more than once", e.Name, "name")
			continue
		}

		staged := descriptor.NewBuilder()
		b.staged[e.Name] = staged
		roots = append(roots, staged)
	}

	for _, e := range f.Entries {
		b.stage(e)
	}

	if b.diags.HasErrors() {
		return nil, fmt.Errorf("failed to build catalog: %w", b.diags.Err())
	}

	nodes, err := descriptor.FreezeAll(roots...)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	c := &Catalog{nodes: make(map[string]*descriptor.Node, len(nodes))}
	for i, e := range f.Entries {
		c.names = append(c.names, e.Name)
		c.nodes[e.Name] = nodes[i]
	}

	logger.Debug("built catalog", "entries", len(c.names))

	return c, nil
}

// builder stages catalog entries into descriptor builders.
type builder struct {
	resolver descriptor.Resolver
	staged   map[string]*descriptor.Builder
	diags    diagnostic.Diagnostics
}

func (b *builder) stage(e Entry) {
	target := b.staged[e.Name]

	if t, ok := b.resolveType(e.Name, "represented", e.Represented); ok {
		target.SetRepresented(t)
	}

	if e.TreatAs != "" {
		if t, ok := b.resolveType(e.Name, "treat_as", e.TreatAs); ok {
			target.SetTreatAs(t)
		}
	}

	children := make([]*descriptor.Builder, len(e.Children))
	for i, ref := range e.Children {
		if ref == absentRef {
			continue
		}
		children[i] = b.resolveRef(e.Name, fmt.Sprintf("children[%d]", i), ref)
	}
	target.SetChildren(children...)

	// Sorted so diagnostics come out in a stable order.
	keys := make([]string, 0, len(e.Overrides))
	for key := range e.Overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if o := b.resolveRef(e.Name, "overrides["+key+"]", e.Overrides[key]); o != nil {
			target.PutOverride(key, o)
		}
	}
}

func (b *builder) resolveType(entry, field, name string) (descriptor.Type, bool) {
	t, err := b.resolver.Resolve(name)
	if err != nil {
		b.diags.AddError(diagnostic.CodeUnknownType, err.Error(), entry, field)
		return nil, false
	}

	return t, true
}

// resolveRef returns the builder of a referenced entry, or a fresh copy of
// a parsed descriptor.
func (b *builder) resolveRef(entry, field, ref string) *descriptor.Builder {
	if name, ok := strings.CutPrefix(ref, refPrefix); ok {
		staged, found := b.staged[name]
		if !found {
			b.diags.AddError(diagnostic.CodeUnknownEntry, fmt.Sprintf("no entry named %q", name), entry, field)
		}

		return staged
	}

	n, err := descriptor.Parse(ref, b.resolver)
	if err != nil {
		b.diags.AddError(diagnostic.CodeInvalidEntry, err.Error(), entry, field)
		return nil
	}

	return descriptor.CopyFrom(n)
}
