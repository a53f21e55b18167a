package config

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"

	"github.com/randomzgm/bitcore-wallet-service/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the service
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey is used to switch the storage layer between those supported
	// (badger, inmemory)
	DbTypeKey = "DB_TYPE"
	// DefaultCoinKey is the coin wallets are created for when the request
	// does not name one
	DefaultCoinKey = "DEFAULT_COIN"
	// DefaultNetworkKey is the network wallets are created on when the
	// request does not name one
	DefaultNetworkKey = "DEFAULT_NETWORK"

	// DbLocation is the folder inside the datadir containing the database
	DbLocation = "db"
)

var vip *viper.Viper

var defaultDatadir = btcutil.AppDataDir("bws", false)

// InitConfig sets the default values for every config key and reads
// overrides from environment variables prefixed with BWS_.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("BWS")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(DefaultCoinKey, string(domain.CoinBTC))
	vip.SetDefault(DefaultNetworkKey, string(domain.Livenet))

	return validate()
}

// GetString returns the value of the key as a string
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt returns the value of the key as an int
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDatadir returns the data directory of the service
func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	switch dbType := vip.GetString(DbTypeKey); dbType {
	case "badger", "inmemory":
	default:
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	coin := domain.Coin(vip.GetString(DefaultCoinKey))
	if _, ok := domain.PolicyForCoin(coin); !ok {
		return fmt.Errorf("unsupported default coin %s", coin)
	}

	network := domain.Network(vip.GetString(DefaultNetworkKey))
	if !domain.IsSupportedNetwork(network) {
		return fmt.Errorf("unsupported default network %s", network)
	}

	return nil
}
