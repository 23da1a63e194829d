package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := &Memory{}

	require.NoError(t, m.Record(ctx, &Entry{Action: ActionProductUpsert, EntityID: "p1"}))
	require.NoError(t, m.Record(ctx, &Entry{Action: ActionTagUpsert, EntityID: "t1"}))
	require.NoError(t, m.Record(ctx, &Entry{Action: ActionProductDelete, EntityID: "p1"}))

	entries, err := m.Recent(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionProductDelete, entries[0].Action)
	assert.False(t, entries[0].CreatedAt.IsZero())

	entries, _ = m.Recent(ctx, "p1", 1)
	assert.Len(t, entries, 1)
}

func TestNopRecentIsEmpty(t *testing.T) {
	entries, err := Nop{}.Recent(context.Background(), "p1", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}
