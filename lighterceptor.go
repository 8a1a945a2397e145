// Package lighterceptor discovers every network resource that a piece of
// markup, stylesheet or script would request if it were rendered, without
// performing those requests against the real network.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/, whatwg/).
package lighterceptor
