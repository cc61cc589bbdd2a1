package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voyagehq/sofdesk/internal/pipeline"
)

func TestPipelineStatsJob_Run(t *testing.T) {
	pipe := pipeline.NewService(nil, nil, nil, "sentinel")
	job := NewPipelineStatsJob(pipe)
	require.Equal(t, "pipeline_stats", job.Name())
	require.NoError(t, job.Run(context.Background()))
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler()
	job := NewPipelineStatsJob(pipeline.NewService(nil, nil, nil, "sentinel"))
	require.Error(t, s.AddJob(job, "not a cron spec"))
	require.NoError(t, s.AddJob(job, "0 * * * *"))
}
