package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/pagalworld/verifybot/bot"
	"github.com/pagalworld/verifybot/core/bootstrap"
	"github.com/pagalworld/verifybot/core/buildinfo"
	corecmd "github.com/pagalworld/verifybot/core/cmd"
	coreconfig "github.com/pagalworld/verifybot/core/config"
	"github.com/pagalworld/verifybot/core/logger"
	coretelegram "github.com/pagalworld/verifybot/core/telegram"
	"github.com/pagalworld/verifybot/core/telegram/router"
	"github.com/pagalworld/verifybot/roster"
)

type appConfig struct {
	core *coreconfig.Config
}

func (c *appConfig) CoreConfig() *coreconfig.Config { return c.core }

type app struct {
	cfg      *coreconfig.Config
	db       *sqlx.DB
	handlers *bot.Handlers
}

func (a *app) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := bot.BuildRegistry(a.handlers, bot.RegistryOptions{
		VerificationGroupID: a.cfg.Bot.VerificationGroupID,
	})
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		Gate: a.handlers.Gate(),
	})

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.Info(ctx, "app", "build",
				slog.String("payload", buildinfo.Version+"/"+buildinfo.Commit),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			if err := a.db.Close(); err != nil {
				logger.Error(ctx, "db", "db.close_failed",
					slog.String("err", err.Error()),
				)
			}
			return nil
		},
	}, nil
}

func buildApp(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()

	res, err := bootstrap.Run(context.Background(), bootstrap.Options{
		Config: cfg,
		Seeders: []bootstrap.Seeder{
			bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
				return roster.NewPostgresStore(db).EnsureOwner(ctx, cfg.Bot.OwnerID)
			}),
		},
	})
	if err != nil {
		return nil, err
	}

	handlers := bot.NewHandlers(roster.NewPostgresStore(res.DB), bot.Options{
		OwnerID:       cfg.Bot.OwnerID,
		MainGroupLink: cfg.Bot.MainGroupLink,
	})

	return &app{cfg: cfg, db: res.DB, handlers: handlers}, nil
}

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return &appConfig{core: cfg}, nil
		},
		Bootstrap: buildApp,
	})
	if err != nil {
		log.Fatalf("verifybot: %v", err)
	}
}
