package lsp

import "sync"

type document struct {
	content string
	result  *AnalysisResult
}

// DocumentStore holds open light files keyed by URI, with the analysis of
// their latest content.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]document)}
}

// Open stores and analyzes a newly opened document.
func (s *DocumentStore) Open(uri, content string) *AnalysisResult {
	return s.Update(uri, content)
}

// Update replaces a document's content and returns its new analysis.
func (s *DocumentStore) Update(uri, content string) *AnalysisResult {
	result := Analyze(uri, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = document{content: content, result: result}
	return result
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

// Result returns the analysis of an open document, or nil.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri].result
}
