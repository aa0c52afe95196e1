package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	sessionBucket      = []byte("session")
	introductionBucket = []byte("introductions")
	tokenKey           = []byte("token")
)

// Store persists the client's token and the per-user introduction flags.
type Store interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
	HasSeenIntroduction(userID string) (bool, error)
	MarkIntroductionSeen(userID string) error
	Close() error
}

type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (creating if needed) session.db inside dataDir.
func OpenBoltStore(dataDir string) (*BoltStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(dataDir, "session.db"), 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{sessionBucket, introductionBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// LoadToken returns "" when no token is stored.
func (s *BoltStore) LoadToken() (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		token = string(tx.Bucket(sessionBucket).Get(tokenKey))
		return nil
	})
	return token, err
}

func (s *BoltStore) SaveToken(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(tokenKey, []byte(token))
	})
}

func (s *BoltStore) ClearToken() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(tokenKey)
	})
}

func (s *BoltStore) HasSeenIntroduction(userID string) (bool, error) {
	var seen bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		seen = tx.Bucket(introductionBucket).Get([]byte(userID)) != nil
		return nil
	})
	return seen, err
}

func (s *BoltStore) MarkIntroductionSeen(userID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(introductionBucket).Put([]byte(userID), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
