package config

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads filePath whenever it is written or recreated, until ctx is done.
// A file that fails to parse leaves the previous configuration in place.
func Watch(ctx context.Context, filePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// 监听目录，编辑器保存时常会先删除再创建文件
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return err
	}
	target := filepath.Clean(filePath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if _, err := reload(filePath); err != nil {
					log.Printf("config reload failed, keeping previous values: %v", err)
					continue
				}
				log.Printf("config reloaded from %s", filePath)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher error: %v", err)
		}
	}
}

// reload parses filePath over the current values without creating it.
func reload(filePath string) (*AppConfig, error) {
	cfg := Get()
	if err := loadConfig(filePath, &cfg); err != nil {
		return nil, err
	}
	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}
