package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store owns the shared JSON document on disk. All access funnels through a
// single mutex, so read-modify-write updates are serialized and id
// assignment inside Update is race-free.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open initializes the store, creating an empty document if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(&Document{}); err != nil {
			return nil, fmt.Errorf("init document: %w", err)
		}
		log.Printf("store initialized empty document at %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}

	return s, nil
}

// Load returns a copy of the current document.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Update runs fn against the current document and persists the result. The
// callback sees a consistent snapshot and no other writer can interleave.
// If fn returns an error nothing is written.
func (s *Store) Update(fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.write(&doc)
}

func (s *Store) read() (Document, error) {
	var doc Document
	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc, fmt.Errorf("read document: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// write saves through a temp file and rename so a crash mid-save never
// leaves a truncated document behind.
func (s *Store) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".document-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
