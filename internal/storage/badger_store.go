package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the default backend: an embedded LSM key-value database
// living in a directory. Low-latency, crash-safe, single-process (the
// directory lock rejects a second opener).
type BadgerStore struct {
	path     string
	inMemory bool
	logger   *slog.Logger
	db       *badger.DB
}

func NewBadgerStore(path string, logger *slog.Logger) *BadgerStore {
	return &BadgerStore{
		path:   path,
		logger: logger,
	}
}

// NewInMemoryStore returns a store with no disk persistence. Used in tests.
func NewInMemoryStore() *BadgerStore {
	return &BadgerStore{
		inMemory: true,
	}
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (s *BadgerStore) open() error {
	if s.db != nil {
		return nil
	}

	var opts badger.Options
	if s.inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(s.path, 0700); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
		opts = badger.DefaultOptions(s.path).WithSyncWrites(true)
	}

	if s.logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: s.logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	s.db = db

	return nil
}

func (s *BadgerStore) Init() error {
	if !s.inMemory {
		// Refuse to re-init a directory that already holds a database
		if _, err := os.Stat(filepath.Join(s.path, "MANIFEST")); err == nil {
			return fmt.Errorf("storage already initialized at %s", s.path)
		}
	}
	return s.open()
}

func (s *BadgerStore) Load() error {
	if !s.inMemory {
		if _, err := os.Stat(filepath.Join(s.path, "MANIFEST")); os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'atomicday init' first")
		}
	}
	return s.open()
}

func (s *BadgerStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *BadgerStore) Get(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *BadgerStore) Set(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (s *BadgerStore) Delete(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) Keys(prefix string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

// Backup streams a full snapshot of the database to w using badger's
// native backup format. Used by the backup manager for directory stores.
func (s *BadgerStore) Backup(w io.Writer) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Backup(w, 0)
	return err
}

// Restore loads a snapshot previously written by Backup into the database.
func (s *BadgerStore) Restore(r io.Reader) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return s.db.Load(r, 16)
}

func (s *BadgerStore) GetConfigPath() string {
	return s.path
}
