package descriptor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typegraph/descriptor"
)

func TestParse_Grammar(t *testing.T) {
	tests := []struct {
		text string
		want *descriptor.Node
	}{
		{"Foo", descriptor.MustMake(foo)},
		{"Foo:Bar", descriptor.MustMake(foo, descriptor.WithTreatAs(bar))},
		{"Foo:Bar<Baz>", descriptor.MustMake(foo,
			descriptor.WithTreatAs(bar),
			descriptor.WithChildren(descriptor.MustMake(baz)),
		)},
		{"Foo<?, Bar<Baz, ?>>", descriptor.MustMake(foo, descriptor.WithChildren(
			nil,
			descriptor.MustMake(bar, descriptor.WithChildren(descriptor.MustMake(baz), nil)),
		))},
		{" map < string,slice<int> > ", descriptor.MustMake(descriptor.Map, descriptor.WithChildren(
			descriptor.MustMake(descriptor.Named("", "string")),
			descriptor.MustMake(descriptor.Slice, descriptor.WithChildren(descriptor.MustMake(descriptor.Named("", "int")))),
		))},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := descriptor.Parse(tt.text, testResolver)
			require.NoError(t, err)
			assert.True(t, descriptor.Equal(tt.want, got), cmp.Diff(descriptor.QualifiedName(tt.want), descriptor.QualifiedName(got)))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	n := descriptor.MustMake(foo,
		descriptor.WithTreatAs(bar),
		descriptor.WithChildren(
			descriptor.MustMake(baz, descriptor.WithChildren(descriptor.MustMake(foo), nil)),
			descriptor.MustMake(descriptor.Pointer, descriptor.WithChildren(descriptor.MustMake(bar))),
		),
	)

	text := descriptor.QualifiedName(n)
	parsed, err := descriptor.Parse(text, testResolver)
	require.NoError(t, err)

	assert.True(t, descriptor.Equal(n, parsed))
	assert.Empty(t, cmp.Diff(text, descriptor.QualifiedName(parsed)))
}

func TestParse_BackEdgeBecomesAbsent(t *testing.T) {
	parsed, err := descriptor.Parse(descriptor.QualifiedName(selfLoop(foo)), testResolver)
	require.NoError(t, err)

	require.Equal(t, 1, parsed.Arity())
	assert.Nil(t, parsed.Child(0))
}

func TestParse_BracketedNames(t *testing.T) {
	var seen []string
	resolver := descriptor.ResolverFunc(func(name string) (descriptor.Type, error) {
		seen = append(seen, name)
		return descriptor.Named("", name), nil
	})

	n, err := descriptor.Parse("store.Page[int,string]<map[string]int, *store.Order, func(int, string) error>", resolver)
	require.NoError(t, err)

	assert.Equal(t, []string{"store.Page[int,string]", "map[string]int", "*store.Order", "func(int, string) error"}, seen)
	assert.Equal(t, 3, n.Arity())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		text    string
		wantErr error
		msg     string
	}{
		{"", descriptor.ErrInvalidArgument, "expected type name"},
		{"?", descriptor.ErrInvalidArgument, "expected type name"},
		{"Foo*", descriptor.ErrInvalidArgument, "override marker"},
		{"Foo<Bar", descriptor.ErrInvalidArgument, "unterminated"},
		{"Foo<Bar Baz>", descriptor.ErrNotFound, "Bar Baz"},
		{"Foo<Bar;>", descriptor.ErrNotFound, "Bar;"},
		{"Foo>", descriptor.ErrInvalidArgument, "unexpected"},
		{"Foo<>", descriptor.ErrInvalidArgument, "expected type name"},
		{"Qux", descriptor.ErrNotFound, "Qux"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := descriptor.Parse(tt.text, testResolver)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestParse_NilResolver(t *testing.T) {
	_, err := descriptor.Parse("Foo", nil)
	assert.ErrorIs(t, err, descriptor.ErrInvalidArgument)
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, "Foo<Bar>", descriptor.MustParse("Foo<Bar>", testResolver).String())
	assert.Panics(t, func() { descriptor.MustParse("Foo*", testResolver) })
}
