// Package core holds process-level plumbing: crash handling and panic-safe goroutines.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	cleanupMu sync.Mutex
	cleanups  []func()

	// Replaced in tests
	exit               = os.Exit
	crashOut io.Writer = os.Stderr
)

// RegisterCrashCleanup adds fn to the cleanups run before a crash exits, most recent first
// Terminal clients register screen.Fini so the shell is usable after a panic
func RegisterCrashCleanup(fn func()) {
	if fn == nil {
		return
	}
	cleanupMu.Lock()
	cleanups = append(cleanups, fn)
	cleanupMu.Unlock()
}

// runCleanups drains the registered cleanups; a panicking cleanup does not stop the rest
func runCleanups() {
	cleanupMu.Lock()
	fns := cleanups
	cleanups = nil
	cleanupMu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		func() {
			defer func() { _ = recover() }()
			fns[i]()
		}()
	}
}

// HandleCrash is the unified panic handler: cleanups, stack trace, exit 1
func HandleCrash(r any) {
	if r == nil {
		return
	}
	runCleanups()

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

// GoRecover runs fn in a new goroutine and hands a panic to onPanic instead of exiting
// Used where one failing unit (a network peer) must not take the process down
func GoRecover(fn func(), onPanic func(r any, stack []byte)) {
	go func() {
		defer func() {
			if r := recover(); r != nil && onPanic != nil {
				onPanic(r, debug.Stack())
			}
		}()
		fn()
	}()
}
