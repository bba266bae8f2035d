// Package session holds the per-user form state: the assistant name, the
// current suggestions, each field's lock/edit/regenerate state and pending
// notices. Renderers read immutable View snapshots; every mutation goes
// through a Session method.
package session
