// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
)

// StartPublishScheduler runs the background job that flips the publication
// gate once a scheduled publish time comes due.
func (s *ScoreService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(func() {
			if s.firePublishIfDue(time.Now()) {
				log.Println("✅ Scheduled publish fired — results are now visible")
			}
		}),
	)
}

// firePublishIfDue publishes and clears the schedule when now has passed the
// scheduled time. Reports whether the gate was flipped.
func (s *ScoreService) firePublishIfDue(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publishAt == nil || now.Before(*s.publishAt) {
		return false
	}
	s.published = true
	s.lastPublishTime = now
	s.publishAt = nil
	return true
}

// SchedulePublish serves POST /api/results/publish/schedule. The gate stays
// hidden until the scheduler reaches publishAt; an explicit publish/hide in
// the meantime does not clear the schedule.
func (s *ScoreService) SchedulePublish(c *fiber.Ctx) error {
	var input struct {
		PublishAt string `json:"publishAt"`
	}
	if err := c.BodyParser(&input); err != nil || input.PublishAt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "publishAt is required — use RFC3339 (e.g., 2025-12-31T23:00:00Z)",
		})
	}

	publishAt, err := time.Parse(time.RFC3339, input.PublishAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid publishAt — use RFC3339 (e.g., 2025-12-31T23:00:00Z)",
		})
	}
	if !publishAt.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "publishAt must be in the future"})
	}

	s.mu.Lock()
	s.publishAt = &publishAt
	s.mu.Unlock()

	return c.JSON(fiber.Map{
		"message":   "Publish scheduled successfully",
		"publishAt": publishAt,
	})
}

// CancelScheduledPublish serves POST /api/results/publish/cancel.
func (s *ScoreService) CancelScheduledPublish(c *fiber.Ctx) error {
	s.mu.Lock()
	hadSchedule := s.publishAt != nil
	s.publishAt = nil
	s.mu.Unlock()

	if !hadSchedule {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No publish is scheduled"})
	}
	return c.JSON(fiber.Map{"message": "Scheduled publish cancelled"})
}
