package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-service/internal/cache"
	"github.com/mockmate/interview-service/internal/prompts"
)

// memoryCache is an in-memory stand-in for the redis cache.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memoryCache) DeletePattern(context.Context, string) error { return nil }

var validQuestionReply = `["Q one?", "Q two?", "Q three?", "Q four?", "Q five?"]`

func TestQuestionService_Generate(t *testing.T) {
	t.Run("parses generated set", func(t *testing.T) {
		completer := &stubCompleter{reply: "```json\n" + validQuestionReply + "\n```"}
		svc := NewQuestionService(completer, newMemoryCache(), testLogger())

		questions, usedFallback := svc.Generate(context.Background(), "Data Engineer", "Builds pipelines")

		assert.False(t, usedFallback)
		require.Len(t, questions, prompts.QuestionCount)
		assert.Equal(t, "Q one?", questions[0])
	})

	t.Run("transport error substitutes fallback set", func(t *testing.T) {
		completer := &stubCompleter{err: errors.New("timeout")}
		svc := NewQuestionService(completer, newMemoryCache(), testLogger())

		questions, usedFallback := svc.Generate(context.Background(), "Data Engineer", "")

		assert.True(t, usedFallback)
		require.Len(t, questions, prompts.QuestionCount)
		assert.Contains(t, questions[0], "Data Engineer")
	})

	t.Run("wrong question count substitutes fallback set", func(t *testing.T) {
		completer := &stubCompleter{reply: `["only one question?"]`}
		svc := NewQuestionService(completer, newMemoryCache(), testLogger())

		_, usedFallback := svc.Generate(context.Background(), "Data Engineer", "")

		assert.True(t, usedFallback)
	})

	t.Run("blank question substitutes fallback set", func(t *testing.T) {
		completer := &stubCompleter{reply: `["Q1?", "  ", "Q3?", "Q4?", "Q5?"]`}
		svc := NewQuestionService(completer, newMemoryCache(), testLogger())

		_, usedFallback := svc.Generate(context.Background(), "Data Engineer", "")

		assert.True(t, usedFallback)
	})

	t.Run("repeat setup is served from cache", func(t *testing.T) {
		completer := &stubCompleter{reply: validQuestionReply}
		svc := NewQuestionService(completer, newMemoryCache(), testLogger())

		first, _ := svc.Generate(context.Background(), "SRE", "On-call heavy")
		second, usedFallback := svc.Generate(context.Background(), "SRE", "On-call heavy")

		assert.False(t, usedFallback)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, completer.calls)
	})

	t.Run("different postings do not share cache entries", func(t *testing.T) {
		completer := &stubCompleter{reply: validQuestionReply}
		svc := NewQuestionService(completer, newMemoryCache(), testLogger())

		svc.Generate(context.Background(), "SRE", "On-call heavy")
		svc.Generate(context.Background(), "SRE", "Mostly tooling work")

		assert.Equal(t, 2, completer.calls)
	})

	t.Run("fallback results are not cached", func(t *testing.T) {
		completer := &stubCompleter{err: errors.New("timeout")}
		mem := newMemoryCache()
		svc := NewQuestionService(completer, mem, testLogger())

		svc.Generate(context.Background(), "SRE", "")

		assert.Empty(t, mem.items)
	})
}
