package schedule

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/pipeline"
)

// PipelineStatsJob periodically snapshots the intake counters into the log.
type PipelineStatsJob struct {
	pipe *pipeline.Service
}

func NewPipelineStatsJob(pipe *pipeline.Service) *PipelineStatsJob {
	return &PipelineStatsJob{pipe: pipe}
}

func (j *PipelineStatsJob) Name() string {
	return "pipeline_stats"
}

func (j *PipelineStatsJob) Run(ctx context.Context) error {
	stats := j.pipe.Stats()
	logutil.GetLogger(ctx).Info("pipeline stats",
		zap.Int64("processed", stats.Processed),
		zap.Int64("aborted", stats.Aborted),
		zap.Int64("summary_fallbacks", stats.SummaryFallbacks),
	)
	return nil
}
