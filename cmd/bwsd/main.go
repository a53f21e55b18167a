package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/randomzgm/bitcore-wallet-service/config"
	"github.com/randomzgm/bitcore-wallet-service/internal/core/application"
	"github.com/randomzgm/bitcore-wallet-service/internal/core/ports"
	"github.com/randomzgm/bitcore-wallet-service/internal/infrastructure/lock"
	dbbadger "github.com/randomzgm/bitcore-wallet-service/internal/infrastructure/storage/db/badger"
	"github.com/randomzgm/bitcore-wallet-service/internal/infrastructure/storage/db/inmemory"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := openRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error opening storage")
	}
	defer repoManager.Close()

	walletService := application.NewWalletService(
		repoManager, lock.NewInMemoryLocker(),
	)

	log.WithFields(log.Fields{
		"datadir": config.GetDatadir(),
		"db":      config.GetString(config.DbTypeKey),
	}).Info("wallet coordination service started")

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	// The API transport consuming walletService is deployed separately and
	// attached through serve; until then serve only reports readiness and
	// blocks for shutdown.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(ctx, walletService) })
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("shutdown error")
	}

	log.Info("exiting")
}

func serve(ctx context.Context, _ *application.WalletService) error {
	log.Info("ready")
	<-ctx.Done()
	return nil
}

func openRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewRepoManager(), nil
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	if err := os.MkdirAll(dbDir, 0700); err != nil {
		return nil, err
	}
	return dbbadger.NewRepoManager(dbDir, nil)
}
