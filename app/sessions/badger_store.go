package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

const keyPrefix = "session:"

// BadgerStore implements Store on an embedded badger database.
// Entries carry a badger TTL so abandoned sessions are garbage collected.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// NewBadgerStore wraps an open badger database.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BadgerStore{db: db, ttl: ttl, now: time.Now}
}

// OpenBadgerStore opens the badger database at dir. An empty dir keeps
// everything in memory.
func OpenBadgerStore(dir string, ttl time.Duration, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return NewBadgerStore(db, ttl), nil
}

func sessionKey(token string) []byte {
	return []byte(keyPrefix + token)
}

// Create issues a fresh random token for userID.
func (s *BadgerStore) Create(ctx context.Context, userID int) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now()
	sess := &Session{
		Token:     token.String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(sess.Token), data).WithTTL(s.ttl))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

// Get loads the session for token. Expired sessions are removed and
// reported as ErrSessionExpired.
func (s *BadgerStore) Get(ctx context.Context, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, err
	}

	if sess.Expired(s.now()) {
		if err := s.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Delete removes the session for token. Deleting an unknown token is not an error.
func (s *BadgerStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
}

// Count returns the number of stored sessions.
func (s *BadgerStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

var _ Store = (*BadgerStore)(nil)
