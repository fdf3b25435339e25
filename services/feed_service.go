package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"amora_server/models"
	"amora_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FeedPageSize is the number of candidates served per explore-feed page.
const FeedPageSize = 5

// FeedService builds the explore feed: fetch candidates, rank them against
// the viewer, pin favorites, and serve fixed-size pages.
type FeedService struct {
	Store Store
}

// RankCandidates orders candidates for a viewer. The ordering key, ascending:
//  1. negative shared-interest count (more shared interests first)
//  2. age-proximity bucket: 0 if within 3 years of the viewer, else 1
//  3. negative recency (newer profiles first)
//
// Candidates whose email is in favorites are then moved to the front in
// their relative order; favorite status does not affect the base comparison.
// Missing ages and interest sets participate as 0 / empty rather than
// erroring. Candidates without an email are dropped.
func RankCandidates(viewer models.UserProfile, candidates []models.UserProfile, favorites map[string]struct{}) []models.UserProfile {
	ranked := make([]models.UserProfile, 0, len(candidates))
	for _, c := range candidates {
		if c.EmailID == "" {
			continue
		}
		ranked = append(ranked, c)
	}

	viewerInterests := interestSet(viewer.Interests)

	sort.SliceStable(ranked, func(i, j int) bool {
		si := sharedInterestCount(viewerInterests, ranked[i].Interests)
		sj := sharedInterestCount(viewerInterests, ranked[j].Interests)
		if si != sj {
			return si > sj
		}

		bi := ageBucket(viewer.Age, ranked[i].Age)
		bj := ageBucket(viewer.Age, ranked[j].Age)
		if bi != bj {
			return bi < bj
		}

		// RFC3339 timestamps compare lexicographically
		return ranked[i].CreatedAt > ranked[j].CreatedAt
	})

	if len(favorites) == 0 {
		return ranked
	}

	// Stable partition: favorites keep their base order among themselves.
	front := make([]models.UserProfile, 0, len(favorites))
	rest := make([]models.UserProfile, 0, len(ranked))
	for _, c := range ranked {
		if _, ok := favorites[c.EmailID]; ok {
			front = append(front, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(front, rest...)
}

func interestSet(interests []string) map[string]struct{} {
	set := make(map[string]struct{}, len(interests))
	for _, in := range interests {
		in = strings.ToLower(strings.TrimSpace(in))
		if in != "" {
			set[in] = struct{}{}
		}
	}
	return set
}

func sharedInterestCount(viewer map[string]struct{}, candidate []string) int {
	count := 0
	for _, in := range candidate {
		if _, ok := viewer[strings.ToLower(strings.TrimSpace(in))]; ok {
			count++
		}
	}
	return count
}

func ageBucket(viewerAge, candidateAge int) int {
	diff := viewerAge - candidateAge
	if diff < 0 {
		diff = -diff
	}
	if diff <= 3 {
		return 0
	}
	return 1
}

// Feed holds a ranked candidate list and a serving cursor. It is the
// explicitly-owned pagination state: one Feed per viewer session, reset only
// by a new search.
type Feed struct {
	ranked []models.UserProfile
	served int
}

func NewFeed(ranked []models.UserProfile) *Feed {
	return &Feed{ranked: ranked}
}

// Len returns the total number of ranked candidates.
func (f *Feed) Len() int { return len(f.ranked) }

// NextPage serves the next fixed-size page and advances the cursor. A call
// past the end is a no-op returning nil; no candidate is ever served twice
// from the same Feed.
func (f *Feed) NextPage() []models.UserProfile {
	if f.served >= len(f.ranked) {
		return nil
	}
	end := f.served + FeedPageSize
	if end > len(f.ranked) {
		end = len(f.ranked)
	}
	page := f.ranked[f.served:end]
	f.served = end
	return page
}

// Page returns page n (0-based) without moving the cursor; used by the
// stateless HTTP surface where the client tracks its own page number.
func (f *Feed) Page(n int) []models.UserProfile {
	if n < 0 {
		return nil
	}
	start := n * FeedPageSize
	if start >= len(f.ranked) {
		return nil
	}
	end := start + FeedPageSize
	if end > len(f.ranked) {
		end = len(f.ranked)
	}
	return f.ranked[start:end]
}

// Filter returns a new Feed over the subset matching the query (name, city
// or interest, case-insensitive), with pagination reset to the start.
func (f *Feed) Filter(query string) *Feed {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return NewFeed(f.ranked)
	}
	var subset []models.UserProfile
	for _, c := range f.ranked {
		if matchesQuery(c, query) {
			subset = append(subset, c)
		}
	}
	return NewFeed(subset)
}

func matchesQuery(c models.UserProfile, query string) bool {
	if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(strings.ToLower(c.City), query) {
		return true
	}
	for _, in := range c.Interests {
		if strings.Contains(strings.ToLower(in), query) {
			return true
		}
	}
	return false
}

// GetExploreFeed fetches and ranks candidates for a viewer and returns the
// requested page plus the total candidate count.
func (fs *FeedService) GetExploreFeed(ctx context.Context, viewerEmail, query string, page int) ([]models.UserProfile, int, error) {
	viewerService := &UserProfileService{Store: fs.Store}
	viewer, err := viewerService.GetProfile(ctx, viewerEmail)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch viewer profile: %w", err)
	}

	var candidates []models.UserProfile
	err = fs.Store.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		email := utils.ExtractString(item, "emailId")
		if email == "" || email == viewerEmail {
			return false
		}
		return !utils.ExtractBool(item, "banned")
	}, nil, &candidates)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	favorites, err := fs.favoriteSet(ctx, viewerEmail)
	if err != nil {
		// A missing favorites set only loses the pinning, not the feed.
		favorites = map[string]struct{}{}
	}

	feed := NewFeed(RankCandidates(*viewer, candidates, favorites))
	if query != "" {
		feed = feed.Filter(query)
	}
	return feed.Page(page), feed.Len(), nil
}

func (fs *FeedService) favoriteSet(ctx context.Context, viewerEmail string) (map[string]struct{}, error) {
	var favorites []models.Favorite
	err := fs.Store.ScanWithFilter(ctx, models.FavoritesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "fromUserEmail") == viewerEmail
	}, nil, &favorites)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		set[f.ToUserEmail] = struct{}{}
	}
	return set, nil
}
