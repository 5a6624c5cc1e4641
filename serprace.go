// Package serprace races automated browser sessions against several web
// search providers and returns the first usable, normalized result set.
// It also extracts readable article content from arbitrary URLs.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, prometheus/).
package serprace
