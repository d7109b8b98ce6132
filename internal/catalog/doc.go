// Package catalog persists named variable quantities in SQLite.
//
// Each entry stores the declared unit and the tagged JSON payload of a
// quantity.Dynamic, together with a domain-separated SHA-256 digest over the
// name and payload. Get re-verifies the digest and decodes the payload
// against the unit's dimension, so a row that was edited by hand into an
// inconsistent state is reported instead of evaluated.
//
// The database runs in WAL mode with a single connection; see Open.
package catalog
