package lsp

import "sync"

type document struct {
	content string
	version int32
}

// DocumentStore holds open palette documents keyed by URI, with the version
// number the client last sent for each.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]document)}
}

func (s *DocumentStore) Open(uri, content string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = document{content: content, version: version}
}

// Update replaces the content of an open document. Changes older than the
// stored version are ignored; it reports whether the content was stored.
func (s *DocumentStore) Update(uri, content string, version int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || version < doc.version {
		return false
	}
	s.docs[uri] = document{content: content, version: version}
	return true
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc.content, ok
}

// Version returns the version of an open document.
func (s *DocumentStore) Version(uri string) (int32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc.version, ok
}
