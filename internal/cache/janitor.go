package cache

import (
	"context"
	"time"
)

// Sweeper is any cache that can evict expired entries on demand.
type Sweeper interface {
	Sweep() int
}

// Janitor periodically sweeps registered caches until its context ends.
type Janitor struct {
	sweepers []Sweeper
	interval time.Duration
}

func NewJanitor(interval time.Duration, sweepers ...Sweeper) *Janitor {
	return &Janitor{sweepers: sweepers, interval: interval}
}

func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, s := range j.sweepers {
				s.Sweep()
			}
		case <-ctx.Done():
			return
		}
	}
}
