package descriptor

import (
	"reflect"

	"typegraph/internal/common"
)

// Type is a host type handle. Implementations must be comparable values:
// two handles describe the same type iff they are ==.
type Type interface {
	// QualifiedName returns the fully qualified name, e.g. "typegraph/store.Order".
	QualifiedName() string
	// SimpleName returns the short name, e.g. "Order".
	SimpleName() string
	// ReflectiveName returns the name as the reflect package prints it, e.g. "store.Order".
	ReflectiveName() string
}

// TypeID identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "typegraph/store"
	Name    string // e.g., "Order"
}

// Named returns the handle for a type declared in pkgPath.
// Builtin and predeclared types use an empty pkgPath.
func Named(pkgPath, name string) TypeID {
	return TypeID{PkgPath: pkgPath, Name: name}
}

func (t TypeID) QualifiedName() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

func (t TypeID) SimpleName() string {
	return t.Name
}

func (t TypeID) ReflectiveName() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// String returns the qualified name.
func (t TypeID) String() string {
	return t.QualifiedName()
}

// Builtin handles for composite Go types. Their components are the element,
// key and value types, in the order the Go syntax lists them.
var (
	Root      = Named("", "any")
	Pointer   = Named("", "pointer")
	Slice     = Named("", "slice")
	Array     = Named("", "array")
	Map       = Named("", "map")
	Chan      = Named("", "chan")
	Func      = Named("", "func")
	Struct    = Named("", "struct")
	Interface = Named("", "interface")
)

// reflectType is a Type backed by a reflect.Type.
type reflectType struct {
	rt reflect.Type
}

// Of returns the handle for a runtime type. A nil reflect.Type yields nil.
func Of(rt reflect.Type) Type {
	if rt == nil {
		return nil
	}

	return reflectType{rt: rt}
}

// TypeFor returns the handle for T.
func TypeFor[T any]() Type {
	return Of(reflect.TypeFor[T]())
}

// ReflectType returns the runtime type behind a handle created by Of.
func ReflectType(t Type) (reflect.Type, bool) {
	r, ok := t.(reflectType)
	if !ok {
		return nil, false
	}

	return r.rt, true
}

func (t reflectType) isNamed() bool {
	return t.rt.Name() != "" && t.rt.PkgPath() != ""
}

func (t reflectType) QualifiedName() string {
	if t.isNamed() {
		return t.rt.PkgPath() + "." + t.rt.Name()
	}

	return t.rt.String()
}

func (t reflectType) SimpleName() string {
	if t.rt.Name() != "" {
		return t.rt.Name()
	}

	return t.rt.String()
}

func (t reflectType) ReflectiveName() string {
	return t.rt.String()
}

func (t reflectType) String() string {
	return t.QualifiedName()
}
