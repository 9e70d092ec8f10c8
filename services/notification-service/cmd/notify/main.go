package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/config"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/logging"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/notification-service/internal/notifier"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/notification-service/internal/worker"
)

func main() {
	log := logging.New("notification-service")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	var n notifier.Notifier = notifier.NewConsole(log)
	if cfg.SendgridAPIKey != "" && cfg.NotifyToEmail != "" {
		n = notifier.NewEmail(cfg.SendgridAPIKey, cfg.SendgridFromEmail, cfg.NotifyToEmail)
		log.Info("email notifications enabled", zap.String("to", cfg.NotifyToEmail))
	}

	cons := worker.NewConsumer(worker.Config{
		RabbitURL:   cfg.RabbitURL,
		Exchange:    cfg.MQExchange,
		Queue:       "notification.q",
		Bindings:    []string{"booking.*"},
		Prefetch:    16,
		DLXName:     "notification.dlx",
		DLXQueue:    "notification.q.dlq",
		ServiceName: "notification-service",
	}, n, log)

	for {
		if err := cons.Connect(); err != nil {
			log.Warn("rabbitmq connect failed, retrying", zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := cons.Run(ctx); err != nil {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	log.Info("notification-service consuming", zap.String("queue", "notification.q"))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
}
