// Package types defines the directory entities (fields, records, users,
// system settings), the Store contract the persistence backends implement,
// and the error taxonomy shared by the command layer.
//
// Record values are held in a typed Value union so that the listing engine
// can treat scalar and multi-value fields uniformly without knowing field
// identities ahead of time.
package types
