/**
 * @description
 * This file contains the background cache refresher. On a cron schedule it
 * re-fetches the account list and drops the bank selector cache, keeping the
 * dashboard warm without tying freshness to request latency.
 *
 * @dependencies
 * - github.com/robfig/cron/v3: Cron scheduling.
 */

package app

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher periodically refreshes the service caches.
type Refresher struct {
	cron     *cron.Cron
	svc      *Service
	schedule string
}

// NewRefresher creates a refresher for the given cron schedule. An empty
// schedule disables background refresh entirely; Start becomes a no-op.
func NewRefresher(svc *Service, schedule string) *Refresher {
	cronLogger := cron.PrintfLogger(log.Default())
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))
	return &Refresher{
		cron:     c,
		svc:      svc,
		schedule: schedule,
	}
}

// Start registers the refresh job and starts the scheduler.
func (r *Refresher) Start() {
	if r.schedule == "" {
		log.Printf("level=info component=refresher msg=\"no refresh schedule configured; background refresh disabled\"")
		return
	}

	if _, err := r.cron.AddFunc(r.schedule, r.refresh); err != nil {
		log.Printf("level=error component=refresher msg=\"failed to schedule cache refresh\" schedule=%q err=%v", r.schedule, err)
		return
	}
	log.Printf("level=info component=refresher msg=\"scheduled cache refresh\" schedule=%q", r.schedule)

	r.cron.Start()
}

// Stop gracefully stops the scheduler and returns a context that is done once
// running jobs finish.
func (r *Refresher) Stop() context.Context {
	return r.cron.Stop()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := r.svc.RefreshAccounts(ctx); err != nil {
		log.Printf("level=warn component=refresher op=refresh_accounts outcome=failed err=%v", err)
	} else {
		log.Printf("level=info component=refresher op=refresh_accounts outcome=refreshed")
	}

	r.svc.RefreshBankDirectory()
}
