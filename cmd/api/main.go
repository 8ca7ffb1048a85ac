package main

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/julio-sa/DieTI/config"
	"github.com/julio-sa/DieTI/logger"
	"github.com/julio-sa/DieTI/routes"
	"github.com/julio-sa/DieTI/services"
	"github.com/julio-sa/DieTI/utils"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	log := logger.L()

	cfg := config.Load(log)
	db := config.ConnectDB(cfg, log)

	var mailer *utils.Mailer
	if cfg.SESEmail != "" {
		var err error
		mailer, err = utils.NewMailer(context.Background(), cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			log.Fatal("SES mailer init failed", zap.Error(err))
		}
	} else {
		log.Warn("SES_EMAIL not set, password reset mails disabled")
	}

	// in-process fallback for the external scheduler; the endpoint stays
	// available either way and a double run moves nothing
	intakeSvc := services.NewIntakeService(db)
	rolloverSvc := services.NewRolloverService(db, intakeSvc)
	c := cron.New()
	if _, err := c.AddFunc(cfg.RolloverCron, func() {
		if _, err := rolloverSvc.RolloverYesterday(); err != nil {
			log.Error("scheduled rollover failed", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("invalid ROLLOVER_CRON expression", zap.Error(err))
	}
	c.Start()

	r := routes.SetupRouter(cfg, db, mailer)
	log.Info("starting API", zap.String("port", cfg.HTTPPort))
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
