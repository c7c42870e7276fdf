package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tutorcast/internal/modules/media/domain"
	mediaout "tutorcast/internal/modules/media/port/out"
	"tutorcast/internal/platform/logger"
)

const DefaultProbeTimeout = 3 * time.Second

// ProbeService decides once per page key whether narrated audio exists.
type ProbeService struct {
	checker mediaout.AssetChecker
	timeout time.Duration
	log     *logger.Logger

	group   singleflight.Group
	mu      sync.Mutex
	results map[string]domain.Outcome
}

func NewProbeService(checker mediaout.AssetChecker, timeout time.Duration, log *logger.Logger) *ProbeService {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &ProbeService{
		checker: checker,
		timeout: timeout,
		log:     log.With("service", "ProbeService"),
		results: map[string]domain.Outcome{},
	}
}

func ProbeKey(worksheetID string, page int) string {
	return fmt.Sprintf("%s:%d", worksheetID, page)
}

// Probe returns the committed outcome for key, probing assetPath on first use.
// Concurrent callers for the same key share one probe, which runs detached
// from any single caller and is bounded by the probe timeout. A caller whose
// ctx ends stops waiting and gets a cancelled outcome; the shared probe
// keeps going for the others.
func (s *ProbeService) Probe(ctx context.Context, key, assetPath string) domain.Outcome {
	s.mu.Lock()
	if o, ok := s.results[key]; ok {
		s.mu.Unlock()
		return o
	}
	s.mu.Unlock()
	if ctx.Err() != nil {
		return domain.Outcome{Reason: "cancelled"}
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		s.mu.Lock()
		if o, ok := s.results[key]; ok {
			s.mu.Unlock()
			return o, nil
		}
		s.mu.Unlock()
		o := s.race(shared, assetPath)
		s.mu.Lock()
		s.results[key] = o
		s.mu.Unlock()
		return o, nil
	})
	select {
	case res := <-ch:
		return res.Val.(domain.Outcome)
	case <-ctx.Done():
		return domain.Outcome{Reason: "cancelled"}
	}
}

// Forget drops the cached outcome so the next Probe for key runs again.
func (s *ProbeService) Forget(key string) {
	s.mu.Lock()
	delete(s.results, key)
	s.mu.Unlock()
}

func (s *ProbeService) race(ctx context.Context, assetPath string) domain.Outcome {
	if assetPath == "" {
		return domain.Outcome{Reason: "no narrated content"}
	}
	if s.checker == nil {
		return domain.Outcome{Reason: "no asset checker configured"}
	}
	latch := domain.NewLatch()
	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := s.checker.Check(probeCtx, assetPath); err != nil {
			latch.Commit(domain.Outcome{Reason: err.Error()})
			return
		}
		latch.Commit(domain.Outcome{Available: true, Reason: "buffered"})
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case <-latch.Done():
	case <-timer.C:
		latch.Commit(domain.Outcome{Reason: "timeout"})
	case <-ctx.Done():
		latch.Commit(domain.Outcome{Reason: "cancelled"})
	}
	o := latch.Outcome()
	s.log.Debug("media probe settled", "asset", assetPath, "available", o.Available, "reason", o.Reason)
	return o
}
