// Package memory provides in-process implementations of the storage
// interfaces defined in the internal/store package. Nothing survives a
// restart; the store is the single owner of its records and hands out copies.
package memory
