package services

import (
	"context"
	"testing"

	"amora_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(email string, age int, interests []string, createdAt string) models.UserProfile {
	return models.UserProfile{
		EmailID:   email,
		Name:      email,
		Age:       age,
		Interests: interests,
		CreatedAt: createdAt,
	}
}

func TestRankCandidatesIsAPermutation(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, []string{"hiking", "jazz"}, "2024-01-01T00:00:00Z")
	candidates := []models.UserProfile{
		candidate("a@x.com", 25, []string{"hiking"}, "2024-01-02T00:00:00Z"),
		candidate("b@x.com", 40, nil, "2024-01-03T00:00:00Z"),
		candidate("c@x.com", 31, []string{"jazz", "hiking"}, "2024-01-04T00:00:00Z"),
	}

	ranked := RankCandidates(viewer, candidates, nil)

	require.Len(t, ranked, len(candidates))
	seen := map[string]bool{}
	for _, c := range ranked {
		seen[c.EmailID] = true
	}
	for _, c := range candidates {
		assert.True(t, seen[c.EmailID], "candidate %s missing from ranked output", c.EmailID)
	}
}

func TestRankCandidatesDropsMalformedOnly(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, nil, "")
	candidates := []models.UserProfile{
		candidate("a@x.com", 30, nil, "2024-01-01T00:00:00Z"),
		{Name: "no email"},
		candidate("b@x.com", 30, nil, "2024-01-02T00:00:00Z"),
	}

	ranked := RankCandidates(viewer, candidates, nil)
	assert.Len(t, ranked, 2)
}

func TestRankCandidatesOrdersBySharedInterests(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, []string{"hiking", "jazz", "film"}, "")
	candidates := []models.UserProfile{
		candidate("one@x.com", 30, []string{"hiking"}, "2024-01-01T00:00:00Z"),
		candidate("three@x.com", 30, []string{"hiking", "jazz", "film"}, "2024-01-01T00:00:00Z"),
		candidate("zero@x.com", 30, []string{"chess"}, "2024-01-01T00:00:00Z"),
		candidate("two@x.com", 30, []string{"jazz", "film"}, "2024-01-01T00:00:00Z"),
	}

	ranked := RankCandidates(viewer, candidates, nil)

	require.Len(t, ranked, 4)
	assert.Equal(t, "three@x.com", ranked[0].EmailID)
	assert.Equal(t, "two@x.com", ranked[1].EmailID)
	assert.Equal(t, "one@x.com", ranked[2].EmailID)
	assert.Equal(t, "zero@x.com", ranked[3].EmailID)
}

func TestRankCandidatesAgeBucketBreaksInterestTies(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, []string{"hiking"}, "")
	candidates := []models.UserProfile{
		candidate("far@x.com", 45, []string{"hiking"}, "2024-01-05T00:00:00Z"),
		candidate("near@x.com", 33, []string{"hiking"}, "2024-01-01T00:00:00Z"),
	}

	ranked := RankCandidates(viewer, candidates, nil)

	// Within 3 years beats outside it, even though the far candidate is newer.
	assert.Equal(t, "near@x.com", ranked[0].EmailID)
	assert.Equal(t, "far@x.com", ranked[1].EmailID)
}

func TestRankCandidatesRecencyBreaksRemainingTies(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, []string{"hiking"}, "")
	candidates := []models.UserProfile{
		candidate("older@x.com", 31, []string{"hiking"}, "2024-01-01T00:00:00Z"),
		candidate("newer@x.com", 29, []string{"hiking"}, "2024-06-01T00:00:00Z"),
	}

	ranked := RankCandidates(viewer, candidates, nil)

	assert.Equal(t, "newer@x.com", ranked[0].EmailID)
	assert.Equal(t, "older@x.com", ranked[1].EmailID)
}

func TestRankCandidatesUnknownDataDeprioritizesWithoutDropping(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, []string{"hiking"}, "")
	candidates := []models.UserProfile{
		{EmailID: "unknown@x.com"},
		candidate("known@x.com", 30, []string{"hiking"}, "2024-01-01T00:00:00Z"),
	}

	ranked := RankCandidates(viewer, candidates, nil)

	require.Len(t, ranked, 2)
	assert.Equal(t, "known@x.com", ranked[0].EmailID)
	assert.Equal(t, "unknown@x.com", ranked[1].EmailID)
}

func TestRankCandidatesPinsFavoritesInRelativeOrder(t *testing.T) {
	viewer := candidate("viewer@x.com", 30, []string{"hiking", "jazz"}, "")
	candidates := []models.UserProfile{
		candidate("best@x.com", 30, []string{"hiking", "jazz"}, "2024-01-01T00:00:00Z"),
		candidate("fav1@x.com", 50, nil, "2023-01-01T00:00:00Z"),
		candidate("mid@x.com", 30, []string{"hiking"}, "2024-01-01T00:00:00Z"),
		candidate("fav2@x.com", 60, nil, "2022-01-01T00:00:00Z"),
	}
	favorites := map[string]struct{}{
		"fav1@x.com": {},
		"fav2@x.com": {},
	}

	ranked := RankCandidates(viewer, candidates, favorites)

	require.Len(t, ranked, 4)
	// Favorites lead despite ranking worst; their base order is preserved.
	assert.Equal(t, "fav1@x.com", ranked[0].EmailID)
	assert.Equal(t, "fav2@x.com", ranked[1].EmailID)
	assert.Equal(t, "best@x.com", ranked[2].EmailID)
	assert.Equal(t, "mid@x.com", ranked[3].EmailID)
}

func TestFeedNextPageNeverReservesCandidates(t *testing.T) {
	var candidates []models.UserProfile
	for _, email := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		candidates = append(candidates, models.UserProfile{EmailID: email + "@x.com"})
	}
	feed := NewFeed(candidates)

	served := map[string]bool{}
	page1 := feed.NextPage()
	require.Len(t, page1, FeedPageSize)
	for _, c := range page1 {
		served[c.EmailID] = true
	}

	page2 := feed.NextPage()
	require.Len(t, page2, 2)
	for _, c := range page2 {
		assert.False(t, served[c.EmailID], "candidate %s served twice", c.EmailID)
	}

	assert.Nil(t, feed.NextPage(), "exhausted feed must be a no-op")
}

func TestFeedPageOutOfRangeIsNoOp(t *testing.T) {
	feed := NewFeed([]models.UserProfile{{EmailID: "a@x.com"}})

	assert.Nil(t, feed.Page(1))
	assert.Nil(t, feed.Page(-1))
	assert.Len(t, feed.Page(0), 1)
}

func TestFeedFilterResetsPagination(t *testing.T) {
	candidates := []models.UserProfile{
		{EmailID: "a@x.com", Name: "Ana", City: "Madrid"},
		{EmailID: "b@x.com", Name: "Bea", City: "Sevilla"},
		{EmailID: "c@x.com", Name: "Carla", City: "Madrid"},
		{EmailID: "d@x.com", Name: "Dora", City: "Bilbao"},
		{EmailID: "e@x.com", Name: "Eva", City: "Madrid"},
		{EmailID: "f@x.com", Name: "Flor", City: "Madrid"},
	}
	feed := NewFeed(candidates)
	feed.NextPage()

	filtered := feed.Filter("madrid")
	page := filtered.NextPage()

	// The filtered feed starts from its own page 0 over the subset.
	require.Len(t, page, 4)
	assert.Equal(t, "a@x.com", page[0].EmailID)
}

func TestGetExploreFeedExcludesViewerAndBanned(t *testing.T) {
	store := newFakeStore()
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "viewer@x.com", Age: 30})
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "ok@x.com", Age: 30, CreatedAt: "2024-01-01T00:00:00Z"})
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "banned@x.com", Age: 30, Banned: true})

	fs := &FeedService{Store: store}
	profiles, total, err := fs.GetExploreFeed(context.Background(), "viewer@x.com", "", 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "ok@x.com", profiles[0].EmailID)
}

func TestGetExploreFeedPinsStoredFavorites(t *testing.T) {
	store := newFakeStore()
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "viewer@x.com", Age: 30, Interests: []string{"jazz"}})
	store.put(models.UserProfilesTable, candidate("match@x.com", 30, []string{"jazz"}, "2024-01-01T00:00:00Z"))
	store.put(models.UserProfilesTable, candidate("fav@x.com", 55, nil, "2020-01-01T00:00:00Z"))
	store.put(models.FavoritesTable, models.Favorite{FromUserEmail: "viewer@x.com", ToUserEmail: "fav@x.com", Position: 1})

	fs := &FeedService{Store: store}
	profiles, _, err := fs.GetExploreFeed(context.Background(), "viewer@x.com", "", 0)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "fav@x.com", profiles[0].EmailID)
	assert.Equal(t, "match@x.com", profiles[1].EmailID)
}
