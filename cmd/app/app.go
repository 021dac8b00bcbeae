package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/t-hub/tournament-api/internal/api"
	"github.com/t-hub/tournament-api/internal/config"
	"github.com/t-hub/tournament-api/internal/db"
	"github.com/t-hub/tournament-api/internal/events"
	"github.com/t-hub/tournament-api/internal/logger"
	"github.com/t-hub/tournament-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	var publisher events.Publisher
	publisher, err = events.Dial(conf.AMQP.URL)
	if err != nil {
		// The API stays up without the broker; events are dropped until it returns.
		zap.L().Warn("event publisher unavailable, continuing without events", zap.Error(err))
		publisher = events.NewNopPublisher()
	}
	defer publisher.Close()

	s := api.NewServer(conf, postgresDB, publisher)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
