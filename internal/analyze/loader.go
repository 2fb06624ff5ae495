package analyze

import (
	"context"
	"fmt"
	"go/types"
	"reflect"

	"golang.org/x/tools/go/packages"

	"typegraph/descriptor"
	"typegraph/internal/ctxlog"
	"typegraph/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and describes their types.
type Analyzer struct {
	dir      string
	graph    *TypeGraph
	builders map[types.Type]*descriptor.Builder // one builder per type, so shared types stay shared
	external map[descriptor.TypeID]struct{}

	pending []pendingType
}

// pendingType is a named type whose builders await the final freeze.
type pendingType struct {
	info   *TypeInfo
	self   *descriptor.Builder
	fields []*descriptor.Builder
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory packages are loaded from.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithRegistry registers described types in registry instead of a new one.
func WithRegistry(registry *descriptor.Registry) Option {
	return func(a *Analyzer) {
		a.graph.Registry = registry
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:    NewTypeGraph(descriptor.NewRegistry()),
		builders: make(map[types.Type]*descriptor.Builder),
		external: make(map[descriptor.TypeID]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and describes their types.
// Patterns are standard Go package patterns (e.g., "./store", "typegraph/store").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	logger := ctxlog.FromContext(ctx)

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
		}
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
		logger.Debug("described package", "package", pkg.PkgPath, "types", len(a.graph.Packages[pkg.PkgPath].Types))
	}

	if err := a.freeze(); err != nil {
		return nil, err
	}

	return a.graph, nil
}

// processPackage stages descriptors for the exported named types of a package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := a.graph.Packages[pkg.PkgPath]

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		id := descriptor.Named(pkg.PkgPath, name)
		info := &TypeInfo{
			ID:   id,
			Kind: kindOf(typeName.Type().Underlying()),
		}

		pending := pendingType{
			info: info,
			self: a.describe(typeName.Type()),
		}

		if st, ok := typeName.Type().Underlying().(*types.Struct); ok {
			for i := 0; i < st.NumFields(); i++ {
				field := st.Field(i)
				if !field.Exported() {
					continue
				}

				info.Fields = append(info.Fields, FieldInfo{
					Name:     field.Name(),
					Tag:      reflect.StructTag(st.Tag(i)),
					Embedded: field.Embedded(),
					Index:    i,
				})
				pending.fields = append(pending.fields, a.describe(field.Type()))
			}
		}

		a.graph.Types[id] = info
		a.pending = append(a.pending, pending)
		pkgInfo.Types = append(pkgInfo.Types, id)
	}
}

// freeze turns every staged builder into descriptors in a single pass, so a
// type referenced from several places is described by one shared node.
func (a *Analyzer) freeze() error {
	var roots []*descriptor.Builder
	for _, p := range a.pending {
		roots = append(roots, p.self)
		roots = append(roots, p.fields...)
	}

	nodes, err := descriptor.FreezeAll(roots...)
	if err != nil {
		return fmt.Errorf("failed to freeze type descriptors: %w", err)
	}

	i := 0
	for _, p := range a.pending {
		canonical, err := a.graph.Registry.Register(nodes[i])
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", p.info.ID, err)
		}
		p.info.Descriptor = canonical
		i++

		for f := range p.fields {
			p.info.Fields[f].Descriptor = nodes[i]
			i++
		}
	}
	a.pending = nil

	return nil
}

// describe returns the builder describing t, creating it on first use.
func (a *Analyzer) describe(t types.Type) *descriptor.Builder {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.builders[t]; ok {
		return cached
	}

	b := descriptor.NewBuilder()

	// Pre-cache to handle recursive types (we'll fill in details)
	a.builders[t] = b

	switch tt := t.(type) {
	case *types.Named:
		a.describeNamed(tt, b)

	case *types.TypeParam:
		b.SetRepresented(descriptor.Named("", tt.Obj().Name()))

	case *types.Basic:
		b.SetRepresented(descriptor.Named("", tt.Name()))

	case *types.Pointer:
		b.SetRepresented(descriptor.Pointer).AddChild(a.describe(tt.Elem()))

	case *types.Slice:
		b.SetRepresented(descriptor.Slice).AddChild(a.describe(tt.Elem()))

	case *types.Array:
		b.SetRepresented(descriptor.Array).AddChild(a.describe(tt.Elem()))

	case *types.Map:
		b.SetRepresented(descriptor.Map).
			AddChild(a.describe(tt.Key())).
			AddChild(a.describe(tt.Elem()))

	case *types.Chan:
		b.SetRepresented(descriptor.Chan).AddChild(a.describe(tt.Elem()))

	case *types.Struct:
		b.SetRepresented(descriptor.Struct)
		for i := 0; i < tt.NumFields(); i++ {
			b.AddChild(a.describe(tt.Field(i).Type()))
		}

	case *types.Signature:
		b.SetRepresented(descriptor.Func)
		for v := range tt.Params().Variables() {
			b.AddChild(a.describe(v.Type()))
		}
		for v := range tt.Results().Variables() {
			b.AddChild(a.describe(v.Type()))
		}

	case *types.Interface:
		if tt.Empty() {
			b.SetRepresented(descriptor.Root)
		} else {
			b.SetRepresented(descriptor.Interface)
		}

	default:
		// Unsupported types keep the builder's root default.
		a.graph.Diagnostics.AddWarning(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("type %s is described as %s", t, descriptor.Root), t.String(), "")
	}

	return b
}

// describeNamed describes a named type by its generic origin, with type
// arguments (or the declaration's type parameters) as components.
func (a *Analyzer) describeNamed(named *types.Named, b *descriptor.Builder) {
	obj := named.Origin().Obj()

	pkgPath := ""
	if obj.Pkg() != nil {
		pkgPath = obj.Pkg().Path()
	}

	id := descriptor.Named(pkgPath, obj.Name())
	b.SetRepresented(id)
	a.graph.Registry.RegisterType(id)
	a.noteExternal(id)

	if basic, ok := named.Underlying().(*types.Basic); ok {
		b.SetTreatAs(descriptor.Named("", basic.Name()))
	}

	if args := named.TypeArgs(); args.Len() > 0 {
		for arg := range args.Types() {
			b.AddChild(a.describe(arg))
		}

		return
	}

	if params := named.TypeParams(); params.Len() > 0 {
		for param := range params.TypeParams() {
			b.AddChild(a.describe(param))
		}
	}
}

// noteExternal records, once per type, that a named type from a package
// outside the load is described by its name alone.
func (a *Analyzer) noteExternal(id descriptor.TypeID) {
	if id.PkgPath == "" {
		return
	}
	if _, loaded := a.graph.Packages[id.PkgPath]; loaded {
		return
	}
	if _, seen := a.external[id]; seen {
		return
	}

	a.external[id] = struct{}{}
	a.graph.Diagnostics.AddInfo(diagnostic.CodeExternalType,
		"type is outside the loaded packages and is described by name only", id.QualifiedName(), "")
}

// kindOf classifies the underlying type of a named type.
func kindOf(underlying types.Type) TypeKind {
	switch underlying.(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Interface:
		return TypeKindInterface
	case *types.Signature:
		return TypeKindFunc
	case *types.Chan:
		return TypeKindChan
	default:
		return TypeKindUnknown
	}
}

// GetStruct returns the TypeInfo for a named struct.
func (g *TypeGraph) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := descriptor.Named(pkgPath, typeName)
	info := g.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s: %w", id, descriptor.ErrNotFound)
	}
	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}

// ResolveStruct resolves a type name the way Registry.Resolve does and
// returns the loaded struct it names.
func (g *TypeGraph) ResolveStruct(name string) (*TypeInfo, error) {
	typ, err := g.Registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	id, ok := typ.(descriptor.TypeID)
	if !ok {
		return nil, fmt.Errorf("type %s: %w", typ.QualifiedName(), descriptor.ErrNotFound)
	}

	return g.GetStruct(id.PkgPath, id.Name)
}
