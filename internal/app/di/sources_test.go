package di

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	messages []string
}

func (r *recordingReporter) SendLog(ctx context.Context, level slog.Level, message string) {
	r.messages = append(r.messages, message)
}

func TestBuildSources_AllRecognizedNames(t *testing.T) {
	reporter := &recordingReporter{}
	deps := SourceDeps{Reporter: reporter}

	names := []string{"nbp-a", "nbp-b", "ecb", "fixer", "coingecko"}
	sources := BuildSources(context.Background(), names, deps)

	require.Len(t, sources, 5)
	// 構成順のままで、IDは安定したフィード識別子
	wantIDs := []int{SourceNBPTableA, SourceNBPTableB, SourceECB, SourceFixer, SourceCoinGecko}
	for i, src := range sources {
		assert.Equal(t, wantIDs[i], src.ID())
		assert.Equal(t, names[i], src.Name())
		assert.NotNil(t, src.Schedule())
	}
	assert.Empty(t, reporter.messages)
}

func TestBuildSources_UnknownNameIsReportedAndExcluded(t *testing.T) {
	reporter := &recordingReporter{}
	deps := SourceDeps{Reporter: reporter}

	sources := BuildSources(context.Background(), []string{"nbp-a", "yahoo", "ecb"}, deps)

	require.Len(t, sources, 2)
	assert.Equal(t, SourceNBPTableA, sources[0].ID())
	assert.Equal(t, SourceECB, sources[1].ID())

	require.Len(t, reporter.messages, 1)
	assert.Equal(t, `Source "yahoo" is not recognized`, reporter.messages[0])
}

func TestBuildSources_EmptyNames(t *testing.T) {
	sources := BuildSources(context.Background(), nil, SourceDeps{Reporter: &recordingReporter{}})
	assert.Empty(t, sources)
}
