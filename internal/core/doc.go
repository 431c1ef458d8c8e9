// Package core holds the application state and the transition function
// that drives it.
//
// The state lives in a single Model value. Every change goes through
// Transition, a pure function mapping an incoming Event and the current
// Model to the next Model plus zero or more Commands. Commands are plain
// data describing requests against the record server; executing them is
// the caller's job (the terminal UI runs them through a kinto.Client and
// feeds the results back in as Events). Keeping commands as data instead
// of closures is what makes the whole event table unit-testable without
// a server.
//
// Responses re-enter in whatever order the network delivers them. There
// is no request correlation: a stale listing response arriving after a
// newer request overwrites the pager last-write-wins. The model also
// never reads the clock; the current time arrives as a TimeTick event.
//
// The package additionally owns the persisted INI configuration
// (config.go) and the form/record mapping helpers (form.go).
package core
