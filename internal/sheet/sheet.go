package sheet

import (
	"context"
	"fmt"

	"SurveyMonitor/internal/domain"
)

// Request carries all parameters required to read one sheet.
type Request struct {
	SheetID   string
	SheetName string
	BaseURL   string
}

// Reader captures a single export-format strategy (gviz JSON, published HTML, etc.).
type Reader interface {
	Name() string
	Read(ctx context.Context, req Request) ([]domain.RawRow, error)
}

// Registry keeps a mapping from format names to their readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}}
}

// Register adds or replaces a reader implementation.
func (r *Registry) Register(reader Reader) {
	if r.readers == nil {
		r.readers = map[string]Reader{}
	}
	r.readers[reader.Name()] = reader
}

// Resolve returns a reader by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Reader, error) {
	if reader, ok := r.readers[name]; ok {
		return reader, nil
	}
	return nil, fmt.Errorf("sheet reader %s is not registered", name)
}
