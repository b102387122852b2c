package jobs

import (
	"context"
	"time"

	"rentwheels-backend/internal/logger"
)

const jobTimeout = 5 * time.Minute

// stalePendingAge is how long a booking may sit in pending before the
// nightly report flags it for admin attention.
const stalePendingAge = 48 * time.Hour

// PurgeReadNotifications deletes read notifications older than the configured
// retention window.
func (jr *JobRunner) PurgeReadNotifications() {
	jr.runWithRecovery("PurgeReadNotifications", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		retentionDays := jr.config.Scheduler.NotificationRetentionDays
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		deleted, err := jr.store.PurgeReadBefore(ctx, cutoff)
		if err != nil {
			logger.Error("failed to purge read notifications", "error", err)
			return
		}
		logger.Info("purged read notifications", "deleted", deleted, "retention_days", retentionDays)
	})
}

// ReportStaleBookings logs how many bookings of each vocabulary have sat in
// pending past the stale threshold. Report only; state machines stay
// request-driven.
func (jr *JobRunner) ReportStaleBookings() {
	jr.runWithRecovery("ReportStaleBookings", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		cutoff := time.Now().Add(-stalePendingAge)

		staleBookings, err := jr.store.BookingRepository.CountPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("failed to count stale bookings", "error", err)
			return
		}
		staleFlows, err := jr.store.BookingFlowRepository.CountPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("failed to count stale flow bookings", "error", err)
			return
		}

		if staleBookings == 0 && staleFlows == 0 {
			logger.Info("no stale pending bookings")
			return
		}
		logger.Warn("stale pending bookings detected",
			"direct_bookings", staleBookings, "flow_bookings", staleFlows,
			"older_than", stalePendingAge.String())
	})
}
