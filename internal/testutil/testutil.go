// Package testutil provides shared helpers for package tests: a thread-safe
// log buffer and a fake generator invoker that records invocations instead of
// running anything.
package testutil

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/appforge/appforge/internal/invoker"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Invocation is one recorded generator call.
type Invocation struct {
	Command string
	Dir     string
	Options invoker.Options
}

// FakeInvoker implements invoker.Invoker by recording calls. FailCommand,
// when non-empty, makes any matching command return FailErr.
type FakeInvoker struct {
	mu          sync.Mutex
	invocations []Invocation

	Exit        int
	FailCommand string
	FailErr     error
}

// Invoke implements invoker.Invoker.
func (f *FakeInvoker) Invoke(ctx context.Context, command, dir string, options invoker.Options) error {
	f.mu.Lock()
	f.invocations = append(f.invocations, Invocation{Command: command, Dir: dir, Options: options})
	f.mu.Unlock()

	if f.FailCommand != "" && strings.Contains(command, f.FailCommand) {
		return f.FailErr
	}
	return nil
}

// ExitCode implements invoker.Invoker.
func (f *FakeInvoker) ExitCode() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Exit
}

// Invocations returns a copy of all recorded calls.
func (f *FakeInvoker) Invocations() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Invocation(nil), f.invocations...)
}

// Commands returns every recorded command, in call order.
func (f *FakeInvoker) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.invocations))
	for _, inv := range f.invocations {
		out = append(out, inv.Command)
	}
	return out
}

// CountMatching returns how many recorded commands contain substr.
func (f *FakeInvoker) CountMatching(substr string) int {
	n := 0
	for _, cmd := range f.Commands() {
		if strings.Contains(cmd, substr) {
			n++
		}
	}
	return n
}
