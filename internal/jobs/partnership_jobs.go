package jobs

import (
	"context"
	"time"

	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/logger"
	"insa-partnership-backend/internal/utils"
)

// SendActivityDeadlineReminders emails the partner contact for every
// unfinished activity whose deadline falls inside the reminder window.
func (jr *JobRunner) SendActivityDeadlineReminders() {
	jr.runWithRecovery("SendActivityDeadlineReminders", func() {
		ctx := context.Background()
		window := jr.config.Scheduler.ReminderWindowDays

		activities, err := jr.store.ActivityRepository.ListDueWithin(ctx, window)
		if err != nil {
			logger.Error("Failed to query upcoming activity deadlines", "error", err)
			return
		}

		count := 0
		for _, a := range activities {
			partner, err := jr.store.PartnerRepository.GetByID(ctx, a.PartnerID)
			if err != nil {
				logger.Error("Failed to load partner for reminder", "activity_id", a.ID, "partner_id", a.PartnerID, "error", err)
				continue
			}
			if partner.CompanyDetails.Email == "" {
				continue
			}
			if err := jr.emailSvc.SendDeadlineReminder(ctx, partner.CompanyDetails.Email, a.Title, partner.CompanyDetails.Name, a.Deadline); err != nil {
				logger.Error("Failed to send deadline reminder", "activity_id", a.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Activity deadline reminders sent", "count", count, "window_days", window)
	})
}

// MarkExpiredPartnerships flips active partners whose end date has passed to
// EXPIRED. The end date is recomputed from the signing date and the current
// duration, never read from a stored column.
func (jr *JobRunner) MarkExpiredPartnerships() {
	jr.runWithRecovery("MarkExpiredPartnerships", func() {
		ctx := context.Background()
		now := time.Now()

		page := int32(1)
		const pageSize = int32(100)
		expired := 0
		for {
			partners, total, err := jr.store.PartnerRepository.List(ctx, page, pageSize)
			if err != nil {
				logger.Error("Failed to list partners", "error", err)
				return
			}

			for i := range partners {
				p := &partners[i]
				if p.Status != domain.PartnerStatusActive || !p.IsSigned || p.SignedAt == nil || p.Duration.IsZero() {
					continue
				}
				endDate := utils.AddDuration(*p.SignedAt, p.Duration)
				if endDate.After(now) {
					continue
				}
				p.Status = domain.PartnerStatusExpired
				if err := jr.store.PartnerRepository.Update(ctx, p); err != nil {
					logger.Error("Failed to mark partner expired", "partner_id", p.ID, "error", err)
					continue
				}
				expired++
			}

			if page*pageSize >= total {
				break
			}
			page++
		}

		logger.Info("Expired partnerships marked", "count", expired)
	})
}
