// Package proto implements the RESP wire protocol used by Redis replies.
//
// It provides a tagged Value model covering the full RESP3 reply set
// (including map, set, double, boolean, verbatim string, big number,
// attribute and push variants), a reply reader with protocol limits,
// and a command writer.
//
// The Value union is open at the protocol level: servers may introduce
// new reply types. Unrecognized type bytes are captured in a Value of
// KindUnknown rather than failing the read; consumers treat its payload
// as a best-effort debug representation.
package proto
