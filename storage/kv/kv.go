// Package kv provides the flat string-keyed durable storage the client core
// persists into: session blob and schedule cache.
package kv

// Store is the durable local storage contract. Values are opaque strings.
type Store interface {
	// Get returns the value for key, and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
