// Package normalize converts RESP reply trees into JSON-compatible
// values.
//
// The conversion is pure and total for every known reply variant with
// two exceptions: non-finite doubles (JSON has no representation for
// NaN or infinity) and replies nested beyond MaxDepth. Unrecognized
// future variants degrade to a textual debug representation instead of
// failing; that fallback is a best-effort escape hatch, not a stable
// format.
//
// Bulk and verbatim payloads are decoded as UTF-8 with invalid
// sequences replaced, so genuinely binary payloads do not round-trip
// through normalization.
package normalize
