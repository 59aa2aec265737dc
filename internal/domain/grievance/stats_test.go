package grievance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDefaultSeed(t *testing.T) {
	stats := Summarize(DefaultSeed(time.Now()), 3)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 2, stats.Resolved, "closed counts as resolved")
	assert.Equal(t, 1, stats.ByStatus[StatusClosed])

	require.Len(t, stats.ByCategory, 4)
	assert.Equal(t, CategoryNoWaterSupply, stats.ByCategory[0].Category)
	assert.Equal(t, "No Water Supply", stats.ByCategory[0].Label)

	require.Len(t, stats.Recent, 3)
	assert.Equal(t, "JSS-5821", stats.Recent[0].ID)
}

func TestSummarizeEmptyAndUnboundedRecent(t *testing.T) {
	empty := Summarize(nil, 5)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.ByCategory)
	assert.Empty(t, empty.Recent)

	all := Summarize(DefaultSeed(time.Now()), -1)
	assert.Len(t, all.Recent, 4)
}
