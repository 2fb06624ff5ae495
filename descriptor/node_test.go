package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typegraph/descriptor"
)

func TestMake_Defaults(t *testing.T) {
	n, err := descriptor.Make(foo)
	require.NoError(t, err)

	assert.Equal(t, foo, n.Represented())
	assert.Equal(t, foo, n.TreatAs())
	assert.False(t, n.HasOverrides())
	assert.Empty(t, n.Overrides())
	assert.Equal(t, 0, n.Arity())
	assert.Empty(t, n.Children())
}

func TestMake_AllFields(t *testing.T) {
	child := descriptor.MustMake(baz)
	override := descriptor.MustMake(bar)

	n, err := descriptor.Make(foo,
		descriptor.WithTreatAs(bar),
		descriptor.WithOverrides(map[any]*descriptor.Node{"root": override}),
		descriptor.WithChildren(child, nil),
	)
	require.NoError(t, err)

	assert.Equal(t, bar, n.TreatAs())
	assert.True(t, n.HasOverrides())
	assert.Same(t, override, n.Override("root"))
	assert.Equal(t, 2, n.Arity())
	assert.Same(t, child, n.Child(0))
	assert.Nil(t, n.Child(1))
}

func TestMake_NilTreatAsKeepsDefault(t *testing.T) {
	n := descriptor.MustMake(foo, descriptor.WithTreatAs(nil))
	assert.Equal(t, foo, n.TreatAs())
}

func TestMake_SkipsNilOptions(t *testing.T) {
	n, err := descriptor.Make(foo, nil, descriptor.WithTreatAs(bar), nil)
	require.NoError(t, err)
	assert.Equal(t, bar, n.TreatAs())
}

func TestMake_MissingRepresented(t *testing.T) {
	_, err := descriptor.Make(nil)
	require.ErrorIs(t, err, descriptor.ErrInvalidArgument)

	var fieldErr *descriptor.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "represented", fieldErr.Field)
}

func TestMake_NilOverride(t *testing.T) {
	_, err := descriptor.Make(foo, descriptor.WithOverrides(map[any]*descriptor.Node{"k": nil}))
	require.ErrorIs(t, err, descriptor.ErrTypeMismatch)
	assert.NotErrorIs(t, err, descriptor.ErrInvalidArgument)

	var fieldErr *descriptor.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "overrides[k]", fieldErr.Field)
}

func TestMake_SnapshotsInputs(t *testing.T) {
	children := []*descriptor.Node{descriptor.MustMake(baz)}
	overrides := map[any]*descriptor.Node{1: descriptor.MustMake(bar)}

	n := descriptor.MustMake(foo,
		descriptor.WithChildren(children...),
		descriptor.WithOverrides(overrides),
	)

	children[0] = descriptor.MustMake(bar)
	overrides[2] = descriptor.MustMake(baz)
	delete(overrides, 1)

	assert.Equal(t, "Foo*<Baz>", descriptor.QualifiedName(n))
	assert.Len(t, n.Overrides(), 1)

	// Accessors hand out copies too.
	n.Children()[0] = nil
	n.Overrides()[3] = nil
	assert.NotNil(t, n.Child(0))
	assert.Len(t, n.Overrides(), 1)
}

func TestNode_OverrideFallsBackToSelf(t *testing.T) {
	type account struct{ id int }
	key := &account{id: 1}

	special := descriptor.MustMake(bar)
	n := descriptor.MustMake(foo, descriptor.WithOverrides(map[any]*descriptor.Node{key: special}))

	assert.Same(t, special, n.Override(key))
	assert.Same(t, n, n.Override(&account{id: 1}), "keys are matched by identity for pointers")
	assert.Same(t, n, n.Override("missing"))
}

func TestMustMake_Panics(t *testing.T) {
	assert.Panics(t, func() { descriptor.MustMake(nil) })
}

func TestError_Messages(t *testing.T) {
	_, err := descriptor.Make(nil)
	assert.Equal(t, "represented: InvalidArgument: represented type is required", err.Error())
	assert.Equal(t, "NotFound", descriptor.ErrNotFound.Error())
	assert.Equal(t, "ErrorKind(9)", descriptor.ErrorKind(9).String())
}
