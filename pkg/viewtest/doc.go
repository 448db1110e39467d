// Package viewtest provides an isolated harness for testing view trees
// without a host renderer. It drives the same build, re-invocation, and
// assembly phases as a real frame loop against an in-memory world, and
// offers finders for locating display nodes and helpers for injecting
// hover and focus between ticks.
package viewtest
