// Package docs maintains the financial knowledge base backing the Q&A
// endpoint: an in-memory document list with optional JSONL persistence.
package docs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Document is one entry of the knowledge base.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Store keeps documents in memory. When opened with a persist path, added
// documents are appended as JSON lines and reloaded on the next start.
type Store struct {
	mu   sync.Mutex
	docs []Document
	file *os.File
	enc  *json.Encoder
}

// NewStore creates a memory-only store.
func NewStore() *Store {
	return &Store{}
}

// NewPersistentStore opens (creating if needed) the JSONL file at path,
// reloads any documents it already holds, and appends new ones to it.
func NewPersistentStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}
	store := &Store{}
	if err := store.load(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open docs file: %w", err)
	}
	store.file = file
	store.enc = json.NewEncoder(file)
	return store, nil
}

func (s *Store) load(path string) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open docs file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return fmt.Errorf("decode docs line: %w", err)
		}
		s.docs = append(s.docs, doc)
	}
	return scanner.Err()
}

// Add creates a document with a fresh id and timestamp, stores it, and
// persists it when a file is attached.
func (s *Store) Add(title, content, category string) Document {
	doc := Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Category:  category,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Lock()
	s.docs = append(s.docs, doc)
	if s.enc != nil {
		_ = s.enc.Encode(doc)
	}
	s.mu.Unlock()
	return doc
}

// All returns a copy of every stored document in insertion order.
func (s *Store) All() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Count reports how many documents are stored.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Close flushes and closes the persistence file handle, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.enc = nil
	return err
}
