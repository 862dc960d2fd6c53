// internal/app/store/filestore/filestore.go
//
// JSON-file implementation of the store contract. Each collection lives in
// one file under the data directory as a single top-level JSON array. Every
// operation loads and fully decodes the file it needs; every mutation
// re-encodes and replaces the whole file. Writes go through a temp file and
// an atomic rename, so a reader never sees a torn file, but the
// read-modify-write cycle is not transactional: when two mutations of the
// same collection interleave, the later save overwrites the earlier one and
// that update is lost. This store is for single-process use.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
)

// Collection names; the file for a collection is <name>.json.
const (
	colUsers        = "users"
	colEvents       = "events"
	colOrders       = "orders"
	colBankAccounts = "bank-accounts"
	colPayouts      = "payouts"
	colApps         = "apps"
	colUserApps     = "user-apps"
)

// Store is the file-backed implementation of store.Store.
type Store struct {
	dir      string
	codec    *banking.Codec
	settings store.Settings

	// testHookAfterLoad, when set, runs after a collection file has been
	// decoded and before the operation continues. Tests use it to hold an
	// operation inside its read-modify-write window.
	testHookAfterLoad func(collection string)
}

var _ store.Store = (*Store)(nil)

// New opens (creating if needed) the data directory and returns a ready
// store. Collection files are created lazily, on first touch.
func New(dir string, codec *banking.Codec, settings store.Settings) (*Store, error) {
	if codec == nil {
		return nil, errors.New("filestore: banking codec is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create data dir: %w", err)
	}
	return &Store{dir: dir, codec: codec, settings: settings}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// load decodes an entire collection file. A missing file is first written
// with its seed content (the app catalog) or an empty array.
func load[T any](s *Store, collection string) ([]T, error) {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		if ierr := s.initCollection(collection); ierr != nil {
			return nil, ierr
		}
		data, err = os.ReadFile(s.path(collection))
	}
	if err != nil {
		return nil, store.Wrap("load", collection, err)
	}
	records := []T{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, store.Wrap("decode", collection, err)
	}
	if s.testHookAfterLoad != nil {
		s.testHookAfterLoad(collection)
	}
	return records, nil
}

// save re-encodes an entire collection and renames it into place over the
// old file. Concurrent savers finish in some order and the later rename
// wins whole-file; see the package comment.
func save[T any](s *Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return store.Wrap("encode", collection, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return store.Wrap("save", collection, err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		return store.Wrap("save", collection, errors.Join(werr, cerr))
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		os.Remove(tmp.Name())
		return store.Wrap("save", collection, err)
	}
	return nil
}

// initCollection writes a collection file that does not exist yet. O_EXCL
// keeps a concurrent initializer from clobbering content that appeared
// between the stat and the write.
func (s *Store) initCollection(collection string) error {
	var content any = []json.RawMessage{}
	if collection == colApps {
		content = store.SeedApps()
	}
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return store.Wrap("seed", collection, err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.path(collection), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return store.Wrap("seed", collection, err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil || cerr != nil {
		return store.Wrap("seed", collection, errors.Join(werr, cerr))
	}
	return nil
}

// Ping reports whether the data directory is still present and usable.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return store.Wrap("ping", "datadir", err)
	}
	if !info.IsDir() {
		return store.Wrap("ping", "datadir", errors.New("data path is not a directory"))
	}
	return nil
}

// Close is a no-op; files are opened and closed per operation.
func (s *Store) Close(_ context.Context) error { return nil }

// foldContains reports whether needle occurs in haystack under fold
// normalization (case and diacritics ignored). An empty needle matches.
func foldContains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(text.Fold(haystack), text.Fold(needle))
}

// indexOf returns the index of the first record matching pred, or -1.
func indexOf[T any](records []T, pred func(*T) bool) int {
	for i := range records {
		if pred(&records[i]) {
			return i
		}
	}
	return -1
}
