package descriptor_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typegraph/descriptor"
)

func TestRegistry_RegisterFirstWins(t *testing.T) {
	r := descriptor.NewRegistry()

	first := descriptor.MustMake(foo, descriptor.WithTreatAs(bar))
	got, err := r.Register(first)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = r.Register(descriptor.MustMake(foo))
	require.NoError(t, err)
	assert.Same(t, first, got)

	n, ok := r.Lookup(foo)
	require.True(t, ok)
	assert.Same(t, first, n)

	_, ok = r.Lookup(bar)
	assert.False(t, ok)

	_, err = r.Register(nil)
	assert.ErrorIs(t, err, descriptor.ErrInvalidArgument)
}

func TestRegistry_Of(t *testing.T) {
	r := descriptor.NewRegistry()

	a, err := r.Of(foo)
	require.NoError(t, err)
	b, err := r.Of(foo)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, "Foo", descriptor.QualifiedName(a))

	_, err = r.Of(nil)
	assert.ErrorIs(t, err, descriptor.ErrInvalidArgument)
}

func TestRegistry_LoadOrComputeConcurrent(t *testing.T) {
	r := descriptor.NewRegistry()

	var calls atomic.Int32
	compute := func(typ descriptor.Type) (*descriptor.Node, error) {
		calls.Add(1)
		return descriptor.Make(typ, descriptor.WithChildren(descriptor.MustMake(baz)))
	}

	const workers = 16
	results := make([]*descriptor.Node, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := r.LoadOrCompute(foo, compute)
			assert.NoError(t, err)
			results[i] = n
		}()
	}
	wg.Wait()

	for _, n := range results {
		assert.Same(t, results[0], n)
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Equal(t, "Foo<Baz>", descriptor.QualifiedName(results[0]))
}

func TestRegistry_LoadOrComputeErrors(t *testing.T) {
	r := descriptor.NewRegistry()

	boom := errors.New("boom")
	_, err := r.LoadOrCompute(foo, func(descriptor.Type) (*descriptor.Node, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = r.LoadOrCompute(foo, func(descriptor.Type) (*descriptor.Node, error) {
		return descriptor.Make(bar)
	})
	assert.ErrorIs(t, err, descriptor.ErrTypeMismatch)

	_, ok := r.Lookup(foo)
	assert.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	r := descriptor.NewRegistry()

	order := descriptor.Named("typegraph/store", "Order")
	storeCustomer := descriptor.Named("typegraph/store", "Customer")
	warehouseCustomer := descriptor.Named("typegraph/warehouse", "Customer")

	r.RegisterType(order)
	r.RegisterType(storeCustomer)
	r.RegisterType(warehouseCustomer)
	r.RegisterType(order)

	for _, name := range []string{"typegraph/store.Order", "store.Order", "Order"} {
		typ, err := r.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, order, typ, name)
	}

	_, err := r.Resolve("Customer")
	require.ErrorIs(t, err, descriptor.ErrNotFound)
	assert.ErrorContains(t, err, "typegraph/store.Customer, typegraph/warehouse.Customer")

	_, err = r.Resolve("Invoice")
	assert.ErrorIs(t, err, descriptor.ErrNotFound)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = r.Resolve("Ordr")
	require.ErrorIs(t, err, descriptor.ErrNotFound)
	assert.ErrorContains(t, err, `did you mean "Order"?`)

	assert.Equal(t, []descriptor.Type{storeCustomer, order, warehouseCustomer}, r.Types())
}

func TestRegistry_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := descriptor.NewRegistry(descriptor.WithRegisterer(reg), descriptor.WithMetricsNamespace("test"))

	_, err := r.Of(foo)
	require.NoError(t, err)
	_, err = r.Of(foo)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.Equal(t, 1.0, counterValue(t, reg, "test_registry_registrations_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "test_registry_hits_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "test_registry_misses_total"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}

	require.FailNow(t, "metric not found", name)
	return 0
}

func TestBuiltins(t *testing.T) {
	typ, err := descriptor.Builtins().Resolve("map")
	require.NoError(t, err)
	assert.Equal(t, descriptor.Map, typ)

	typ, err = descriptor.Builtins().Resolve("any")
	require.NoError(t, err)
	assert.Equal(t, descriptor.Root, typ)

	_, err = descriptor.Builtins().Resolve("Order")
	assert.ErrorIs(t, err, descriptor.ErrNotFound)
}

func TestChainResolvers(t *testing.T) {
	failing := descriptor.ResolverFunc(func(string) (descriptor.Type, error) {
		return nil, errors.New("broken index")
	})

	_, err := descriptor.ChainResolvers(descriptor.Builtins(), failing).Resolve("Order")
	assert.EqualError(t, err, "broken index")

	typ, err := descriptor.ChainResolvers(descriptor.Builtins(), failing).Resolve("int")
	require.NoError(t, err)
	assert.Equal(t, descriptor.Named("", "int"), typ)

	_, err = descriptor.ChainResolvers().Resolve("int")
	assert.ErrorIs(t, err, descriptor.ErrNotFound)
}
