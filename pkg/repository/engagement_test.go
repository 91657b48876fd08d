package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pryzm/pkg/domain"
)

func TestEngagementRepository_RecordEngagement(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	id, err := repos.Engagement.RecordEngagement(ctx, domain.Engagement{ItemID: "item-1", Action: domain.ActionClick,
		SessionID: "s1", Metadata: map[string]any{"position": 3}})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	_, err = repos.Engagement.RecordEngagement(ctx, domain.Engagement{ID: "fixed", ItemID: "item-1",
		Action: domain.ActionDwell, UserID: "u1", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = repos.Engagement.RecordEngagement(ctx, domain.Engagement{ItemID: "item-1", Action: domain.ActionClick})
	require.NoError(t, err)

	_, err = repos.Engagement.RecordEngagement(ctx, domain.Engagement{ItemID: "item-1", Action: "like"})
	require.Error(t, err)

	counts, err := repos.Engagement.CountByItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, map[domain.EngagementAction]int{domain.ActionClick: 2, domain.ActionDwell: 1}, counts)

	var meta string
	require.NoError(t, repos.DB.GetContext(ctx, &meta, "SELECT metadata FROM user_engagements WHERE id = ?", id))
	assert.JSONEq(t, `{"position":3}`, meta)
}
