// Package store persists JSON collection documents under the data directory.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Provider is the interface for raw document operations. Collection-level
// load/save is layered on top with the generic Load and Save helpers so the
// backing store can later be swapped for an embedded database without
// touching the entity managers.
type Provider interface {
	// ReadDoc returns the raw bytes of the document at path (relative to the data root).
	ReadDoc(path string) ([]byte, error)
	// WriteDoc atomically writes content to path (relative to the data root).
	WriteDoc(path string, content []byte) error
	// EnsureDir creates the directory at path (relative to the data root) if missing.
	EnsureDir(path string) error
}

// Load reads a collection document and decodes it. Any read or parse failure
// degrades to an empty collection and is logged; callers never see an error.
func Load[T any](p Provider, name string) []T {
	data, err := p.ReadDoc(name)
	if err != nil {
		slog.Warn("store: load failed", slog.String("doc", name), slog.String("error", err.Error()))
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("store: parse failed", slog.String("doc", name), slog.String("error", err.Error()))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save serializes the full collection and overwrites the document.
func Save[T any](p Provider, name string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", name, err)
	}
	if err := p.WriteDoc(name, data); err != nil {
		slog.Error("store: save failed", slog.String("doc", name), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// LoadSingleton reads a single-record document into target. Returns false
// (and leaves target untouched) when the document is missing or malformed.
func LoadSingleton[T any](p Provider, name string, target *T) bool {
	data, err := p.ReadDoc(name)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		slog.Warn("store: parse failed", slog.String("doc", name), slog.String("error", err.Error()))
		return false
	}
	return true
}

// SaveSingleton serializes a single-record document.
func SaveSingleton[T any](p Provider, name string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", name, err)
	}
	return p.WriteDoc(name, data)
}
