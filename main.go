// @title Gradebook 后端 API
// @version 1.0
// @description 课堂作业与评分系统的后端服务器。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"gradebook_backend/internal/app"
	"gradebook_backend/internal/config"
	"gradebook_backend/pkg/configwatcher"
	"gradebook_backend/pkg/logger"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	store := config.NewStore(cfg)
	application := app.NewApp(store)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 新配置以快照形式原子发布，正在处理的请求继续读旧快照
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if reloaded, ok := newCfg.(*config.Config); ok {
			store.Swap(reloaded)
			logger.Log.Info("Config reloaded")
		}
	})

	application.Run()
}
