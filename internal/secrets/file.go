package secrets

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

const nonceSize = 24

// File is a Store backed by a single encrypted file. The whole key/value
// table is sealed with nacl/secretbox and rewritten atomically (temp file +
// rename) on every mutation, so a concurrent reader sees either the old or
// the new table, never a torn one.
type File struct {
	path string
	key  [32]byte

	mu     sync.RWMutex
	values map[string][]byte
}

// OpenFile opens (creating if needed) an encrypted file store. key must be
// 32 bytes.
func OpenFile(path string, key []byte) (*File, error) {
	if len(key) != 32 {
		return nil, apperrors.Storage(apperrors.KindKeychainError,
			fmt.Errorf("secret store key must be 32 bytes, got %d", len(key)))
	}

	f := &File{path: path, values: make(map[string][]byte)}
	copy(f.key[:], key)

	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Save stores value under key and persists the table.
func (f *File) Save(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = append([]byte(nil), value...)
	return f.persist()
}

// Load returns the value under key.
func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	if !ok {
		return nil, apperrors.Storage(apperrors.KindKeyNotFound, nil)
	}
	return append([]byte(nil), v...), nil
}

// Delete removes key and persists the table. Deleting an absent key is not
// an error.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.persist()
}

// Exists reports whether key is present.
func (f *File) Exists(_ context.Context, key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.values[key]
	return ok
}

func (f *File) load() error {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return apperrors.Storage(apperrors.KindKeychainError, fmt.Errorf("read secret store: %w", err))
	}
	if len(raw) < nonceSize {
		return apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("secret store file truncated"))
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &f.key)
	if !ok {
		return apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("secret store cannot be opened with this key"))
	}

	if err := json.Unmarshal(plain, &f.values); err != nil {
		return apperrors.Storage(apperrors.KindDecodingFailed, fmt.Errorf("decode secret table: %w", err))
	}
	return nil
}

// persist seals and atomically replaces the file. Caller holds f.mu.
func (f *File) persist() error {
	plain, err := json.Marshal(f.values)
	if err != nil {
		return apperrors.Storage(apperrors.KindEncodingFailed, fmt.Errorf("encode secret table: %w", err))
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return apperrors.Storage(apperrors.KindKeychainError, fmt.Errorf("generate nonce: %w", err))
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &f.key)

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".secrets-*")
	if err != nil {
		return apperrors.Storage(apperrors.KindKeychainError, fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Storage(apperrors.KindKeychainError, fmt.Errorf("write secret store: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Storage(apperrors.KindKeychainError, fmt.Errorf("close secret store: %w", err))
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return apperrors.Storage(apperrors.KindKeychainError, fmt.Errorf("replace secret store: %w", err))
	}
	return nil
}
