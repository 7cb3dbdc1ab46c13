package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1
	prevExit, prevOut := exit, crashOut
	exit = func(c int) { code = c }
	crashOut = &out
	t.Cleanup(func() {
		exit, crashOut = prevExit, prevOut
		cleanups = nil
	})
	return &out, &code
}

func TestHandleCrashRunsCleanupsInReverse(t *testing.T) {
	out, code := captureCrash(t)

	var order []int
	RegisterCrashCleanup(func() { order = append(order, 1) })
	RegisterCrashCleanup(func() { panic("broken cleanup") })
	RegisterCrashCleanup(func() { order = append(order, 3) })
	RegisterCrashCleanup(nil)

	HandleCrash("boom")

	assert.Equal(t, []int{3, 1}, order)
	assert.Equal(t, 1, *code)
	assert.Contains(t, out.String(), "CRASH DETECTED: boom")
	assert.Contains(t, out.String(), "Stack Trace:")

	// Cleanups run once
	order = nil
	HandleCrash("again")
	assert.Empty(t, order)
}

func TestHandleCrashIgnoresNil(t *testing.T) {
	out, code := captureCrash(t)
	HandleCrash(nil)
	assert.Equal(t, -1, *code)
	assert.Zero(t, out.Len())
}

func TestGoRecover(t *testing.T) {
	got := make(chan any, 1)
	GoRecover(func() { panic("peer failed") }, func(r any, stack []byte) {
		assert.NotEmpty(t, stack)
		got <- r
	})
	require.Equal(t, "peer failed", <-got)

	done := make(chan struct{})
	GoRecover(func() { close(done) }, nil)
	<-done
}

func TestGoCrashesThroughHandler(t *testing.T) {
	captureCrash(t)
	codes := make(chan int, 1)
	exit = func(c int) { codes <- c }

	Go(func() { panic("worker") })
	assert.Equal(t, 1, <-codes)
}
