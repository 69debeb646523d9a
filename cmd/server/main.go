package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pressroom/internal/config"
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/handler"
	"github.com/pressroom/internal/router"
	"github.com/pressroom/internal/storage"
	"github.com/pressroom/internal/storage/gormdb"
	"github.com/pressroom/internal/storage/memdb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// 变量可以来自 .env 文件，也可以来自进程环境
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger := newLogger()
	defer func() {
		_ = logger.Sync()
	}()

	// 初始化存储：数据库打不开时退回内存实现，保证可用性优先
	var store storage.Storage
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		logger.Warn("database unavailable, falling back to in-memory storage",
			zap.String("path", cfg.DatabasePath),
			zap.Error(err),
		)
		store = memdb.New()
	} else {
		if err := db.EnsureAdmin(gdb, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to ensure admin user: %v", err)
		}
		store = gormdb.New(gdb)
	}

	api := handler.NewAPI(store, logger, cfg.UploadDir, cfg.UploadURLPath)
	r := router.SetupRouter(api, cfg.SessionSecret, logger)

	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func newLogger() *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}
