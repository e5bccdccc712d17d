// Package jobs holds the scheduled job functions referenced from
// config.CronJobs. Jobs take optional string args so they can also be invoked
// one-off via `cron:start --job <name>`.
package jobs

import (
	"context"
	"log"
	"time"

	"storefront.GO/config"
	"storefront.GO/core/kvstore"
	catalogService "storefront.GO/service/catalog"
)

func init() {
	config.CronJobs["catalogreload"] = config.CronJob{Schedule: "@hourly", Job: CatalogReloadJob}
	config.CronJobs["sessionpurge"] = config.CronJob{Schedule: "@every 30m", Job: SessionPurgeJob}
}

// CatalogReloadJob rebuilds the in-memory catalog snapshot from the database.
// Scheduled hourly so external imports show up without a restart.
func CatalogReloadJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("cron catalogreload: db: %v", err)
		return
	}
	start := time.Now()
	if err := catalogService.GetService(db).Reload(); err != nil {
		log.Printf("cron catalogreload: %v", err)
		return
	}
	log.Printf("cron catalogreload: done in %s", time.Since(start))
}

// SessionPurgeJob sweeps expired entries out of the KV store. Redis expires
// keys itself; the file and memory backends need the sweep.
func SessionPurgeJob(args ...string) {
	store := kvstore.Default()
	purger, ok := store.(kvstore.Purger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	removed, err := purger.PurgeExpired(ctx)
	if err != nil {
		log.Printf("cron sessionpurge: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("cron sessionpurge: removed %d expired entries", removed)
	}
}
