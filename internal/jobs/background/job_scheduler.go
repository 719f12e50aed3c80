package background

import (
	"context"
	"log"
	"sync"
	"time"

	"storeadmin/internal/analytics"
	"storeadmin/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// staleUnpaidAge is how old an unpaid order must be before the report job
// counts it as abandoned.
const staleUnpaidAge = 24 * time.Hour

// JobScheduler manages the periodic background jobs
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.Service
	storeRepo    repositories.StoreRepository
	orderRepo    repositories.OrderRepository
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc *analytics.Service, storeRepo repositories.StoreRepository, orderRepo repositories.OrderRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		storeRepo:    storeRepo,
		orderRepo:    orderRepo,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Dashboard metrics refresh - every 5 minutes
	dashboardJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboards, context.Background()),
		gocron.WithName("dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobs["dashboard-refresh"] = dashboardJob
	}

	// Stale unpaid order report - every hour. Read-only: unpaid orders
	// are never deleted, only counted.
	staleJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.reportStaleUnpaidOrders, context.Background()),
		gocron.WithName("stale-unpaid-orders"),
	)
	if err != nil {
		log.Printf("Failed to create stale order report job: %v", err)
	} else {
		js.jobs["stale-unpaid-orders"] = staleJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshDashboards recomputes and re-caches dashboard metrics for every
// store so the admin dashboard stays warm between requests
func (js *JobScheduler) refreshDashboards(ctx context.Context) {
	stores, err := js.storeRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Dashboard refresh: failed to list stores: %v", err)
		return
	}

	storeIDs := make([]uuid.UUID, 0, len(stores))
	for _, store := range stores {
		storeIDs = append(storeIDs, store.ID)
	}

	js.analyticsSvc.RefreshAll(ctx, storeIDs)
	log.Printf("Dashboard refresh: recomputed metrics for %d stores", len(storeIDs))
}

// reportStaleUnpaidOrders logs how many unpaid orders have been sitting
// around past the abandonment threshold
func (js *JobScheduler) reportStaleUnpaidOrders(ctx context.Context) {
	count, err := js.orderRepo.CountStaleUnpaid(ctx, time.Now().Add(-staleUnpaidAge))
	if err != nil {
		log.Printf("Stale order report: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Stale order report: %d unpaid orders older than %s", count, staleUnpaidAge)
	}
}
