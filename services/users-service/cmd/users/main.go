package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/config"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/db"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/logging"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/obs"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/service"
	thttp "github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/transport/http"
)

func main() {
	log := logging.New("users-service")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	shutdown, err := obs.InitTracer(context.Background(), "users-service")
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		defer shutdown(context.Background())
	}

	gdb, err := db.Open(cfg.PGUsersDSN)
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}

	repo := repository.NewUserRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	svc := service.NewUserSvc(repo, time.Duration(cfg.JWTExpireMin)*time.Minute)

	r := gin.Default()
	thttp.NewUserHandler(svc, cfg.BookingsBaseURL).Register(r)

	log.Info("users-service listening", zap.String("addr", cfg.UsersHTTPAddr))
	if err := r.Run(cfg.UsersHTTPAddr); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
