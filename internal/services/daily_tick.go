package services

import (
	"context"
	"time"
)

// DailyTickService fires once per local day boundary so the current week gets
// re-derived without any request traffic. The goroutine stops when the
// lifecycle context is canceled.
type DailyTickService struct {
	clock    Clock
	location *time.Location
	onNewDay func(today time.Time)
}

func NewDailyTickService(clock Clock, location *time.Location, onNewDay func(today time.Time)) *DailyTickService {
	if clock == nil {
		clock = SystemClock{}
	}
	if location == nil {
		location = time.UTC
	}
	return &DailyTickService{
		clock:    clock,
		location: location,
		onNewDay: onNewDay,
	}
}

func (service *DailyTickService) Start(ctx context.Context) {
	go service.run(ctx)
}

func (service *DailyTickService) run(ctx context.Context) {
	for {
		wait := service.UntilNextDay(service.clock.Now())
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if service.onNewDay != nil {
				service.onNewDay(DateAtLocation(service.clock.Now(), service.location))
			}
		}
	}
}

// UntilNextDay is the duration from now to the next local midnight, never
// zero, so a tick exactly on the boundary still waits a full day.
func (service *DailyTickService) UntilNextDay(now time.Time) time.Duration {
	today := DateAtLocation(now, service.location)
	next := today.AddDate(0, 0, 1)
	wait := next.Sub(now.In(service.location))
	if wait <= 0 {
		wait = 24 * time.Hour
	}
	return wait
}
