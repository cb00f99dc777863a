package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgzx-dev/schedule-board/backend/internal/config"
	"github.com/dgzx-dev/schedule-board/backend/internal/repository"
	"github.com/dgzx-dev/schedule-board/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 仅创建初始配置, 2: 写入默认课节和学期)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 连接数据库
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		if _, err := seed.EnsureSettings(repo, cfg); err != nil {
			logger.Error("创建初始配置失败", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case 2:
		if err := seed.SeedDefaultData(repo, cfg); err != nil {
			logger.Error("写入默认数据失败", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		logger.Error("未知的操作", slog.Int("op", op))
		os.Exit(1)
	}
}
