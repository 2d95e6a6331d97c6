package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct {
	Namespace string `arg:"" help:"Cache namespace to invalidate: search, book, cover" required:""`
}

func (i *InvalidateCacheCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	slog.Info("Invalidating cache", "namespace", i.Namespace, "database", cacheDB)

	tableName := i.Namespace + "_cache"
	if !ValidCacheTableNames[tableName] {
		return fmt.Errorf("invalid cache namespace '%s'; valid namespaces are: search, book, cover", i.Namespace)
	}

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	rowsDeleted, err := cacheInstance.InvalidateNamespace(tableName)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "namespace", i.Namespace, "rows_deleted", rowsDeleted)
	return nil
}
