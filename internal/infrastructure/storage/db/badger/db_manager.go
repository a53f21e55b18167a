package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
	"github.com/randomzgm/bitcore-wallet-service/internal/core/ports"
)

type repoManager struct {
	store *badgerhold.Store

	walletRepository  *walletRepository
	addressRepository *addressRepository
}

// NewRepoManager opens (or creates if not existing) the badger store in a
// dedicated directory under the given data dir. An empty data dir opens the
// store in memory, which is useful for testing.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if baseDbDir != "" {
		dbDir = filepath.Join(baseDbDir, "wallets")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallets db: %w", err)
	}

	return &repoManager{
		store:             store,
		walletRepository:  newWalletRepository(store),
		addressRepository: newAddressRepository(store),
	}, nil
}

func (m *repoManager) WalletRepository() domain.WalletRepository {
	return m.walletRepository
}

func (m *repoManager) AddressRepository() domain.AddressRepository {
	return m.addressRepository
}

func (m *repoManager) Close() error {
	return m.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if dbDir == "" {
		opts.InMemory = true
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}
