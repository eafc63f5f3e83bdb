// Copyright 2026 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// future_test.go — single-assignment semantics of the promise cell.
package future_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-reactor/future"
)

func TestPromise_SucceedResolvesFuture(t *testing.T) {
	p := future.New[string]()
	f := p.Future()
	require.False(t, f.IsResolved())

	p.Succeed("done")

	require.True(t, f.IsResolved())
	v, err := f.Sync()
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	select {
	case <-f.Done():
	default:
		t.Fatal("Done channel must be closed after resolution")
	}
}

func TestPromise_FailResolvesFuture(t *testing.T) {
	boom := errors.New("boom")
	p := future.New[int]()
	p.Fail(boom)

	_, err := p.Future().Sync()
	assert.ErrorIs(t, err, boom)
}

func TestPromise_DoubleResolutionPanics(t *testing.T) {
	p := future.New[int]()
	p.Succeed(1)
	assert.Panics(t, func() { p.Succeed(2) })
	assert.Panics(t, func() { p.Fail(errors.New("late")) })
}

func TestFuture_ObserverBeforeResolution(t *testing.T) {
	p := future.New[int]()
	var got int
	p.Future().OnComplete(func(v int, err error) { got = v })

	p.Succeed(7)
	assert.Equal(t, 7, got)
}

func TestFuture_ObserverAfterResolution(t *testing.T) {
	p := future.New[int]()
	p.Succeed(7)

	var got int
	p.Future().OnComplete(func(v int, err error) { got = v })
	assert.Equal(t, 7, got, "late observers still receive the result")
}

func TestFuture_ObserversRunInRegistrationOrder(t *testing.T) {
	p := future.New[int]()
	var order []string
	p.Future().OnComplete(func(int, error) { order = append(order, "first") })
	p.Future().OnComplete(func(int, error) { order = append(order, "second") })

	p.Succeed(1)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestImmediateConstructors(t *testing.T) {
	f := future.Succeeded(99)
	require.True(t, f.IsResolved())
	assert.Equal(t, 99, f.Value())
	assert.NoError(t, f.Err())

	boom := errors.New("boom")
	g := future.Failed[int](boom)
	require.True(t, g.IsResolved())
	assert.ErrorIs(t, g.Err(), boom)
}
