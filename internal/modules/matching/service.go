// README: Matching service fans candidate classification out over a bounded worker pool.
package matching

import (
	"context"
	"log"
	"sync"
	"time"

	"smartride/internal/config"
	"smartride/internal/metrics"
)

// RideClassifier analyzes one candidate against a passenger's trip.
type RideClassifier interface {
	Classify(ctx context.Context, ride CandidateRide, passengerSource, passengerDestination string) (*RideMatch, error)
}

type Service struct {
	classifier RideClassifier
	cfg        config.MatchingConfig
	metrics    *metrics.Collector
}

func NewService(classifier RideClassifier, cfg config.MatchingConfig, m *metrics.Collector) *Service {
	return &Service{classifier: classifier, cfg: cfg, metrics: m}
}

type indexedMatch struct {
	idx   int
	match *RideMatch
}

// MatchRides classifies every candidate against the passenger's trip and
// returns the viable ones ranked. Classification runs on a bounded worker
// pool; each candidate fails open, so one unanalyzable ride (or an expired
// deadline) only shrinks the result set, never errors the search.
func (s *Service) MatchRides(ctx context.Context, candidates []CandidateRide, source, destination string) []RideMatch {
	if len(candidates) == 0 {
		return []RideMatch{}
	}
	start := time.Now()

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	results := make(chan indexedMatch, len(candidates))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					// Deadline passed: remaining candidates are omitted.
					continue
				}
				s.classifyOne(ctx, candidates[idx], idx, source, destination, results)
			}
		}()
	}

	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	close(results)

	// Restore input order before ranking so the stable sort's tie-breaking
	// is reproducible regardless of worker scheduling.
	byInput := make([]*RideMatch, len(candidates))
	for r := range results {
		byInput[r.idx] = r.match
	}
	matches := make([]RideMatch, 0, len(candidates))
	for _, m := range byInput {
		if m != nil {
			matches = append(matches, *m)
		}
	}

	if s.metrics != nil {
		s.metrics.Searches.Inc()
		s.metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}
	return Rank(matches)
}

func (s *Service) classifyOne(ctx context.Context, ride CandidateRide, idx int, source, destination string, results chan<- indexedMatch) {
	match, err := s.classifier.Classify(ctx, ride, source, destination)
	switch {
	case err != nil:
		// Fail open: a candidate that cannot be analyzed is dropped so the
		// rest of the result page still renders.
		log.Printf("matching: dropping ride %s: %v", ride.ID, err)
		s.countOutcome("error")
	case match == nil:
		s.countOutcome("no_match")
	default:
		s.countOutcome(outcomeLabel(match.Type))
		results <- indexedMatch{idx: idx, match: match}
	}
}

func (s *Service) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.Classifications.WithLabelValues(outcome).Inc()
	}
}

func outcomeLabel(t MatchType) string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchAlongRoute:
		return "along_route"
	case MatchPartialDetour:
		return "partial_detour"
	default:
		return "unknown"
	}
}
