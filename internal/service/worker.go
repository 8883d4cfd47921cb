package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartAnalysisWorker schedules the periodic retry of pending photo analyses
func (s *fleetService) StartAnalysisWorker(interval time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if err := s.RunPendingAnalyses(ctx); err != nil {
				s.logger.WithError(err).Error("Pending analysis run failed")
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule analysis job: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler

	s.logger.WithField("interval", interval.String()).Info("Analysis worker started")
	return nil
}
