package jobs

import (
	"context"
	"time"

	"gamerental-backend/internal/logger"
)

const reportTimeout = 5 * time.Minute

// ReportOverdueRentals logs every outstanding rental past its due date with
// the delay fee accrued so far.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		overdue, err := jr.rentals.ListOverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		var totalFee int64
		for _, r := range overdue {
			totalFee += int64(r.AccruedFee)
			logger.Debug("Overdue rental",
				"rental_id", r.ID,
				"customer_id", r.CustomerID,
				"game_id", r.GameID,
				"due_date", r.DueDate,
				"days_late", r.DaysLate,
				"accrued_fee", r.AccruedFee)
		}

		logger.Info("Overdue rentals reported", "count", len(overdue), "total_accrued_fee", totalFee)
	})
}
