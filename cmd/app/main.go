package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/config"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/logger"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/transport"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		db.Module,
		auth.Module,
		service.Module,
		transport.Module,
		fx.WithLogger(func(l *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Desugar().Named("fx")}
		}),
	).Run()
}
