// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartReconcileScheduler runs the nightly rarity sweep. Rarity is derived
// from current counts, so the sweep heals any drift left by the documented
// concurrent-write races.
func (s *RarityService) StartReconcileScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			log.Println("[Scheduler] Starting rarity reconcile sweep")
			if err := s.ReconcileAll(); err != nil {
				log.Printf("[Scheduler] Rarity reconcile failed: %v", err)
			}
		}),
	)
}
