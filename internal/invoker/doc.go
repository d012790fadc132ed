// Package invoker provides the isolated-execution capability behind
// generation: a single Invoker interface with a child-process implementation
// (used when applications must not share generator state) and an in-process
// implementation (used for single-application and entity-only runs, and
// substituted with a fake in tests).
package invoker
