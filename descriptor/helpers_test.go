package descriptor_test

import "typegraph/descriptor"

var (
	foo = descriptor.Named("", "Foo")
	bar = descriptor.Named("", "Bar")
	baz = descriptor.Named("", "Baz")
)

// testResolver resolves the test handles and the builtins.
var testResolver = descriptor.ChainResolvers(
	descriptor.Builtins(),
	descriptor.ResolverFunc(func(name string) (descriptor.Type, error) {
		for _, t := range []descriptor.TypeID{foo, bar, baz} {
			if t.Name == name {
				return t, nil
			}
		}

		return nil, descriptor.ErrNotFound
	}),
)

// selfLoop freezes a builder whose only child is itself.
func selfLoop(t descriptor.Type) *descriptor.Node {
	b := descriptor.NewBuilder().SetRepresented(t)
	b.AddChild(b)

	n, err := b.Freeze()
	if err != nil {
		panic(err)
	}

	return n
}
