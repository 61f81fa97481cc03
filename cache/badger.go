package cache

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/voyant/core"
)

// BadgerCache is a persistent vector cache backed by BadgerDB.
// Vectors survive process restarts, so a warm cache keeps serving
// previously embedded queries without any embedding traffic.
type BadgerCache struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ VectorCache = (*BadgerCache)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBadgerCache opens a persistent vector cache at the specified path.
// Creates the directory if it doesn't exist. With inMemory set, the cache
// lives entirely in memory and the path is ignored.
func OpenBadgerCache(filePath string, inMemory bool) (*BadgerCache, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerCache{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Get returns the cached vector for the key, if present.
// A malformed stored payload is treated as a miss and logged.
func (c *BadgerCache) Get(key core.ID) ([]float32, bool) {
	var vector []float32

	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(encodeCacheKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			vector, err = UnmarshalVector(val)
			return err
		})
	})
	if err != nil {
		if err != badger.ErrKeyNotFound {
			c.logger.Warn("embedding cache read failed", "key", uint64(key), "error", err)
		}
		return nil, false
	}
	return vector, true
}

// Put stores the vector under the key.
func (c *BadgerCache) Put(key core.ID, vector []float32) error {
	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(encodeCacheKey(key), MarshalVector(vector))
	})
}

// Close closes the underlying database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

func encodeCacheKey(key core.ID) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(key))
	return buf
}

// MarshalVector encodes a vector as fixed-width little-endian float32 values.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// UnmarshalVector decodes a vector produced by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, ErrMalformedVector
	}
	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return vector, nil
}
