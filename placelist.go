// Package placelist extracts structured place records from the text of
// map-listing pages. A place record carries a name, a rating, a short
// description and a price tier, each of which may be absent.
//
// This package contains domain types, interfaces and the text extraction
// core following Ben Johnson's Standard Package Layout. The extraction core
// is pure: it operates on strings already obtained by an adapter and never
// touches a network or a browser. Implementations of the interfaces live in
// subdirectories named after their primary dependency (e.g., rod/, goquery/,
// sqlite/).
package placelist
