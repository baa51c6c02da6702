package store

import "sync"

// Memory is an in-process Store used for guests without a session backend
// and throughout the tests. Signal handlers are invoked synchronously on
// Dispatch.
type Memory struct {
	mu       sync.RWMutex
	values   map[string][]byte
	handlers map[string]map[int]func()
	nextID   int
}

func NewMemory() *Memory {
	return &Memory{
		values:   make(map[string][]byte),
		handlers: make(map[string]map[int]func()),
	}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (m *Memory) Set(key string, value []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return true
}

func (m *Memory) Remove(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return true
}

func (m *Memory) Dispatch(signal string) bool {
	m.mu.RLock()
	handlers := make([]func(), 0, len(m.handlers[signal]))
	for _, h := range m.handlers[signal] {
		handlers = append(handlers, h)
	}
	m.mu.RUnlock()

	for _, h := range handlers {
		h()
	}
	return true
}

// On registers a handler for a dispatched signal and returns a disposer.
func (m *Memory) On(signal string, fn func()) func() {
	m.mu.Lock()
	if m.handlers[signal] == nil {
		m.handlers[signal] = make(map[int]func())
	}
	id := m.nextID
	m.nextID++
	m.handlers[signal][id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers[signal], id)
	}
}
