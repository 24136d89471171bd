package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	LocalStorageDir  = "local"
	SecureStorageDir = "secure"
	WebhookDir       = "webhooks"
)

// NewStore opens (or creates if not exists) a badgerhold store in the given
// sub directory of baseDbDir. If baseDbDir is empty the store is in-memory.
func NewStore(
	baseDbDir, name string, logger badger.Logger,
) (*badgerhold.Store, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, name)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", name, err)
	}
	return store, nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for range ticker.C {
				if err := db.Badger().RunValueLogGC(0.5); err != nil {
					if err == badger.ErrRejected {
						ticker.Stop()
						return
					}
					if err != badger.ErrNoRewrite {
						log.Error(err)
					}
				}
			}
		}()
	}

	return db, nil
}
