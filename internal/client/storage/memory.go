package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/common"
)

// Op names a Store operation for failure injection.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpRemove Op = "remove"
)

var errInjected = errors.New("injected failure")

type failureKey struct {
	op  Op
	key string
}

// MemoryStore is a process-local Store. It backs the "memory" driver and
// the tests, which can make individual operations fail with FailOn.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	failures map[failureKey]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		failures: make(map[failureKey]error),
	}
}

// FailOn makes every subsequent op on key fail with cause (wrapped as a
// storage failure). A nil cause uses a generic injected error.
func (m *MemoryStore) FailOn(op Op, key string, cause error) {
	if cause == nil {
		cause = errInjected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[failureKey{op: op, key: key}] = cause
}

// ClearFailures removes all injected failures.
func (m *MemoryStore) ClearFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = make(map[failureKey]error)
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) failure(op Op, key string) error {
	cause, ok := m.failures[failureKey{op: op, key: key}]
	if !ok {
		return nil
	}
	return common.StorageError(fmt.Sprintf("failed to %s credential[%s]", op, key), cause)
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, common.StorageError("get", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.failure(OpGet, key); err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return common.StorageError("set", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(OpSet, key); err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return common.StorageError("remove", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(OpRemove, key); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}
