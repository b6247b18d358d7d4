package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// Checker pings one dependency.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthService reports whether every dependency is reachable.
type HealthService interface {
	// Ready runs every checker concurrently. details maps a checker name to
	// "ok" or its error text.
	Ready(ctx context.Context) (details map[string]string, err error)
}

type healthService struct {
	checkers []Checker
	timeout  time.Duration
}

func NewHealthService(timeout time.Duration, checkers ...Checker) HealthService {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &healthService{checkers: checkers, timeout: timeout}
}

func (s *healthService) Ready(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var mu sync.Mutex
	details := make(map[string]string, len(s.checkers))

	p := pool.New().WithErrors().WithContext(ctx)
	for _, c := range s.checkers {
		p.Go(func(ctx context.Context) error {
			err := c.Check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				details[c.Name] = err.Error()
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			details[c.Name] = "ok"
			return nil
		})
	}
	return details, p.Wait()
}
