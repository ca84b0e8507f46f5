package db

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"github.com/boltdb/bolt"
	"github.com/giwty/quarkpad/settings"
	"go.uber.org/zap"
)

const (
	DB_INTERNAL_TABLENAME = "internal-metadata"
)

type PersistentDB struct {
	db     *bolt.DB
	logger *zap.SugaredLogger
}

func NewPersistentDB(baseFolder string, l *zap.SugaredLogger) (*PersistentDB, error) {
	path := filepath.Join(baseFolder, settings.HISTORY_DB_FILENAME)

	// Another running instance holds the file lock, wait a little for it
	var db *bolt.DB
	err := retry.Do(
		func() error {
			var openErr error
			db, openErr = bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
			return openErr
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, bolt.ErrTimeout)
		}),
		retry.OnRetry(func(n uint, err error) {
			l.Warnf("database %s is locked, retrying (%d) - %v", path, n+1, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	//set DB version
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(DB_INTERNAL_TABLENAME))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte("app_version"), []byte(settings.APP_VERSION))
	})
	if err != nil {
		l.Warnf("failed to save app_version - %v", err)
	}

	return &PersistentDB{db: db, logger: l}, nil
}

func (pd *PersistentDB) Close() {
	if err := pd.db.Close(); err != nil {
		pd.logger.Warnf("failed to close database - %v", err)
	}
}

func (pd *PersistentDB) AddEntry(tableName string, key string, value interface{}) error {
	return pd.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(tableName))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		var bytesBuff bytes.Buffer
		if err := gob.NewEncoder(&bytesBuff).Encode(value); err != nil {
			return err
		}
		return b.Put([]byte(key), bytesBuff.Bytes())
	})
}

// GetEntry decodes the stored value into value, found is false when the
// table or key does not exist
func (pd *PersistentDB) GetEntry(tableName string, key string, value interface{}) (bool, error) {
	found := false
	err := pd.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(tableName))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		// Decoding the serialized data
		return gob.NewDecoder(bytes.NewReader(v)).Decode(value)
	})
	return found, err
}
