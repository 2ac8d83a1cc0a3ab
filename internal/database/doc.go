// Package database persists the upstream settings record.
//
// The package defines the [Store] interface, a get/merge-set store for the
// single record kept under [model.OptionName]. Two backends are provided and
// selected at runtime with [Open]:
//   - "bolt" (default): BoltDB, an embedded key-value store. The record is a
//     JSON document in the "settings" bucket.
//   - "sqlite": SQLite via modernc.org/sqlite. The record is one row per field.
//
// # Merge Semantics
//
// [Store.Save] merges: keys present in the fragment replace the stored value
// (an empty string included), keys absent from the fragment are kept. Both
// backends apply the merge in a single transaction. Concurrent writers are
// last-write-wins per key.
//
// # Absence
//
// [Store.Load] never reports "not found". A record that was never saved loads
// as an empty [model.Record].
package database
