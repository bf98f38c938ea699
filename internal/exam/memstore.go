package exam

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryStore struct {
	mu        sync.RWMutex
	templates map[string]Template
	records   map[string]Record
	now       func() time.Time
}

// NewInMemoryStore keeps everything in process memory. Used for tests and
// throwaway offline runs.
func NewInMemoryStore() Store {
	return &memoryStore{
		templates: map[string]Template{},
		records:   map[string]Record{},
		now:       time.Now,
	}
}

func (m *memoryStore) PutTemplate(_ context.Context, t Template) (Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().Unix()
	if prev, ok := m.templates[t.ID]; ok {
		t.CreatedAt = prev.CreatedAt
	} else {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	m.templates[t.ID] = t
	return t, nil
}

func (m *memoryStore) GetTemplate(_ context.Context, id string) (Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("exam %q: %w", id, ErrNotFound)
	}
	return t, nil
}

func (m *memoryStore) ListTemplates(_ context.Context, opts ListOpts) ([]TemplateSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(opts.Q))
	out := make([]TemplateSummary, 0, len(m.templates))
	for _, t := range m.templates {
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		out = append(out, TemplateSummary{ID: t.ID, Title: t.Title, Sections: len(t.Sections), UpdatedAt: t.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return page(out, opts.Offset, opts.Limit), nil
}

func (m *memoryStore) DeleteTemplate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return fmt.Errorf("exam %q: %w", id, ErrNotFound)
	}
	delete(m.templates, id)
	for rid, r := range m.records {
		if r.ExamID == id {
			delete(m.records, rid)
		}
	}
	return nil
}

func (m *memoryStore) PutRecord(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[r.ExamID]; !ok {
		return fmt.Errorf("exam %q: %w", r.ExamID, ErrNotFound)
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = m.now().Unix()
	}
	m.records[r.ID] = r
	return nil
}

func (m *memoryStore) GetRecord(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return Record{}, fmt.Errorf("grade %q: %w", id, ErrNotFound)
	}
	return r, nil
}

func (m *memoryStore) ListRecords(_ context.Context, opts RecordListOpts) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0)
	for _, r := range m.records {
		if opts.ExamID != "" && r.ExamID != opts.ExamID {
			continue
		}
		if opts.Student != "" && r.Student != opts.Student {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return page(out, opts.Offset, opts.Limit), nil
}

func page[T any](in []T, offset, limit int) []T {
	limit = normLimit(limit)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []T{}
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}
