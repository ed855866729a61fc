package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/shop"
)

const maxBackoff = 30 * time.Second

// StartRefresher refetches the catalog every interval until ctx ends. A
// non-positive interval disables refetching. Consecutive failures back off
// exponentially up to maxBackoff. It returns immediately.
func StartRefresher(ctx context.Context, store *catalog.Store, api shop.API, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			_ = refreshCatalog(ctx, store, api, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// refreshCatalog replaces the catalog with the server's product list. On
// failure the previous list stays and the error is recorded on the store.
func refreshCatalog(ctx context.Context, store *catalog.Store, api shop.API, logger *slog.Logger) error {
	products, err := api.ListProducts(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("catalog fetch failed", "error", err)
		return err
	}
	store.Update(products, nil)
	logger.Info("catalog loaded", "products", len(products))
	return nil
}

func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
