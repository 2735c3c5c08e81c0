package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/internal/source"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

func newMockCommunity() *CommunityService {
	provider := source.NewBuddyBossWithClock(func() time.Time { return fixedNow })
	return NewCommunityService(provider, nil, nil, time.Minute, 5)
}

func TestMostActiveGroupsRankedByActivity(t *testing.T) {
	svc := newMockCommunity()

	groups, err := svc.MostActiveGroups(context.Background(), models.RawDateRange{}, 3)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []int{85, 72, 64}, []int{
		groups[0].ActivityLevel,
		groups[1].ActivityLevel,
		groups[2].ActivityLevel,
	})
}

func TestMostActiveGroupsInvalidRange(t *testing.T) {
	svc := newMockCommunity()

	_, err := svc.MostActiveGroups(context.Background(), models.RawDateRange{Preset: "decade"}, 0)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))
}

func TestUserActivitiesFiltersByMember(t *testing.T) {
	svc := newMockCommunity()

	feed, err := svc.UserActivities(context.Background(), 101, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Michael Scott", feed[0].UserName)

	empty, err := svc.UserActivities(context.Background(), 999, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestForumStatsTotals(t *testing.T) {
	svc := newMockCommunity()

	stats, hit, err := svc.ForumStats(context.Background(), models.RawDateRange{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 3782, stats.TotalPosts)
	assert.Len(t, stats.ActivityByDate, 6)
}
