// Package storage persists the tracker's running total between sessions.
package storage

import (
	"fmt"
)

// DefaultNamespace keeps tracker keys apart from unrelated data in a shared store.
const DefaultNamespace = "mouseTracker"

// Store is a small key/value store. Get reports ok=false for a missing key.
type Store interface {
	Set(key, value string) error
	Get(key string) (value string, ok bool, err error)
	Delete(key string) error
	Close() error
}

// WriterSetter is implemented by stores that record which tracker wrote a key.
type WriterSetter interface {
	SetWriter(writer string)
}

// UnavailableError reports a failed read or write against the store.
type UnavailableError struct {
	Op  string
	Key string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("persistence unavailable: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence unavailable: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Key joins a namespace and a key the way Namespaced does.
func Key(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + "-" + key
}

type namespacedStore struct {
	Store
	namespace string
}

// Namespaced prefixes every key with "<namespace>-" before it reaches s.
func Namespaced(s Store, namespace string) Store {
	return &namespacedStore{Store: s, namespace: namespace}
}

func (n *namespacedStore) Set(key, value string) error {
	return n.Store.Set(Key(n.namespace, key), value)
}

func (n *namespacedStore) Get(key string) (string, bool, error) {
	return n.Store.Get(Key(n.namespace, key))
}

func (n *namespacedStore) Delete(key string) error {
	return n.Store.Delete(Key(n.namespace, key))
}

func (n *namespacedStore) SetWriter(writer string) {
	if ws, ok := n.Store.(WriterSetter); ok {
		ws.SetWriter(writer)
	}
}
