package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/config"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/db"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/logging"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/obs"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/reviews-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/reviews-service/internal/service"
	thttp "github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/reviews-service/internal/transport/http"
)

func main() {
	log := logging.New("reviews-service")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	shutdown, err := obs.InitTracer(context.Background(), "reviews-service")
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		defer shutdown(context.Background())
	}

	gdb, err := db.Open(cfg.PGReviewsDSN)
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}

	repo := repository.NewReviewRepo(gdb)
	if err := repo.Migrate(); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	svc := service.NewReviewSvc(repo)

	r := gin.Default()
	thttp.NewReviewHandler(svc).Register(r)

	log.Info("reviews-service listening", zap.String("addr", cfg.ReviewsHTTPAddr))
	if err := r.Run(cfg.ReviewsHTTPAddr); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
