// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchJob - Runs every tick interval to assign ready orders to the
// closest available couriers.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignCouriersHandler, tickIntervalSeconds, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed tick is logged and never fatal; the schedule resumes on the next
// interval. Expected business outcomes (no ready orders, no eligible courier
// for an order) are handled inside the tick handler and do not surface here.
package jobs
