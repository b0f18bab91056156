// Package listing is the schema-driven engine behind the directory: facet
// extraction, filter evaluation, sorting, and the page/group layout of the
// record entry form.
//
// Every function here is pure. Inputs are never mutated and results never
// alias input slices, so callers can keep treating schema and record slices
// as immutable values and detect changes by identity.
package listing
