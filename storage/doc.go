// Package storage provides the document backends of a tradingpost.Store.
//
// A document is an opaque byte slice stored under a key. Every backend
// returns an error matching fs.ErrNotExist for a key that was never put, and
// replaces a document atomically.
//
// The packages storage/sqlite and storage/redis provide database backends.
package storage
