// Command seed upserts the service_parts reference catalog. It is safe to run
// repeatedly.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/ahmednasr/autoguide-ai/server/internal/config"
	"github.com/ahmednasr/autoguide-ai/server/internal/database"
	"github.com/ahmednasr/autoguide-ai/server/internal/logger"
	"github.com/ahmednasr/autoguide-ai/server/internal/repository"
	"github.com/ahmednasr/autoguide-ai/server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.DBName)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}

	repo := repository.NewCatalogRepository(db)
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for _, entry := range service.DefaultCatalog() {
		p.Go(func(ctx context.Context) error {
			if err := repo.Upsert(ctx, entry); err != nil {
				return fmt.Errorf("%s: %w", entry.Service, err)
			}
			log.WithField("service", entry.Service).Info("seeded")
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.Info("seeded service_parts successfully")
}
