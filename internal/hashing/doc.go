// Package hashing provides memo tables that assign dense int32 identities to values
// in first-insertion order.
//
// A memo table maps each distinct value to the identity it received when first
// inserted. Identities are contiguous starting at 0 and are never reassigned, so
// the table's Size is always the number of distinct values seen and the values can
// be materialized in identity order.
//
// Memo tables are not safe for concurrent use.
package hashing
