package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CredentialStore is a single mutable slot for the admin bearer token.
// Writes are last-writer-wins.
type CredentialStore interface {
	// Token returns the stored token, or "" when no credential is present.
	Token() string
	Set(token string) error
	Clear() error
}

// MemoryCredentials keeps the token in memory. Used in tests and for
// one-shot commands that never persist a login.
type MemoryCredentials struct {
	mu    sync.Mutex
	token string
}

// NewMemoryCredentials creates an empty in-memory credential slot.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{}
}

func (m *MemoryCredentials) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryCredentials) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// FileCredentials persists the token to a file readable only by the owner,
// so a login survives across CLI invocations.
type FileCredentials struct {
	mu   sync.Mutex
	path string
}

// NewFileCredentials creates a file-backed credential slot at path.
func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{path: path}
}

func (f *FileCredentials) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (f *FileCredentials) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (f *FileCredentials) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
