// Package idgen produces opaque identifiers for disk requests and events.
// It is internal so that tests can stub NewFunc without widening the public API.
package idgen
