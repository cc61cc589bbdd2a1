package pipeline

import "sync/atomic"

type statsCounters struct {
	processed        atomic.Int64
	aborted          atomic.Int64
	summaryFallbacks atomic.Int64
}

// Stats is a point-in-time snapshot of the pipeline counters.
type Stats struct {
	Processed        int64
	Aborted          int64
	SummaryFallbacks int64
}

func (s *Service) Stats() Stats {
	return Stats{
		Processed:        s.stats.processed.Load(),
		Aborted:          s.stats.aborted.Load(),
		SummaryFallbacks: s.stats.summaryFallbacks.Load(),
	}
}
