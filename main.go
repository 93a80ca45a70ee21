package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hoshinonyaruko/gridsnake/api"
	"github.com/hoshinonyaruko/gridsnake/config"
	"github.com/hoshinonyaruko/gridsnake/sqlite"
)

const configPath = "./config.json"

func main() {
	// Initialize the configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", configPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 配置热更新，新开的游戏使用新值
	go func() {
		if err := config.Watch(ctx, configPath); err != nil {
			log.Printf("config watcher stopped: %v", err)
		}
	}()

	EnsureJournalDir(cfg.Journal)
	db, err := sqlite.Open(cfg.Journal)
	if err != nil {
		log.Fatalf("Failed to open tick journal %s: %v", cfg.Journal, err)
	}
	defer db.Close()

	router := api.NewRouter(db, api.NewSessions())
	// 从配置读取端口 监听
	go func() {
		if err := router.Run(":" + config.GetConfigValue("port").(string)); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()
	<-ctx.Done()
	log.Printf("shutting down")
}

// EnsureJournalDir creates the directory holding a file-backed journal.
func EnsureJournalDir(dsn string) {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return
	}
	dir := filepath.Dir(dsn)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		// 使用0755权限以确保读写权限
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create %s directory: %s", dir, err)
		}
		log.Printf("Created %s directory", dir)
	}
}
