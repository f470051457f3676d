package utils

import (
	"testing"
	"time"

	"github.com/hublist/hublist/hublist/database/models"
)

func testListings() []*models.Listing {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*models.Listing{
		{ID: 1, Name: "Gopher Hangout", Description: "A place for Go developers", Type: models.ListingTypeServer, MemberCount: 50, BumpCount: 10, CreatedAt: base},
		{ID: 2, Name: "Art Corner", Description: "Share your artwork", Type: models.ListingTypeServer, MemberCount: 500, BumpCount: 3, Featured: true, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 3, Name: "Moderation Bot", Description: "Keeps servers clean", Type: models.ListingTypeBot, MemberCount: 5000, BumpCount: 25, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 4, Name: "Music Bot", Description: "Plays music in voice channels", Type: models.ListingTypeBot, MemberCount: 120, BumpCount: 7, Featured: true, CreatedAt: base.Add(72 * time.Hour)},
	}
}

func TestMemberBucket(t *testing.T) {
	tests := []struct {
		name    string
		members int
		want    string
	}{
		{name: "zero is small", members: 0, want: BucketSmall},
		{name: "boundary small", members: 100, want: BucketSmall},
		{name: "just over small", members: 101, want: BucketMedium},
		{name: "boundary medium", members: 1000, want: BucketMedium},
		{name: "large", members: 1001, want: BucketLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberBucket(tt.members); got != tt.want {
				t.Errorf("MemberBucket(%d) = %q, want %q", tt.members, got, tt.want)
			}
		})
	}
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters ListingFilters
		wantIDs []int64
	}{
		{
			name:    "no filters returns everything",
			filters: ListingFilters{},
			wantIDs: []int64{1, 2, 3, 4},
		},
		{
			name:    "type filter",
			filters: ListingFilters{Type: string(models.ListingTypeBot)},
			wantIDs: []int64{3, 4},
		},
		{
			name:    "member bucket filter",
			filters: ListingFilters{MemberBucket: BucketSmall},
			wantIDs: []int64{1},
		},
		{
			name:    "featured filter",
			filters: ListingFilters{Featured: true},
			wantIDs: []int64{2, 4},
		},
		{
			name:    "query matches name",
			filters: ListingFilters{Query: "gopher"},
			wantIDs: []int64{1},
		},
		{
			name:    "query matches description",
			filters: ListingFilters{Query: "artwork"},
			wantIDs: []int64{2},
		},
		{
			name:    "query plus type",
			filters: ListingFilters{Query: "music", Type: string(models.ListingTypeBot)},
			wantIDs: []int64{4},
		},
		{
			name:    "no matches",
			filters: ListingFilters{Query: "zzzzqqqq"},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(testListings(), tt.filters)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ApplyFilters() returned %d listings, want %d", len(got), len(tt.wantIDs))
			}
			gotIDs := make(map[int64]bool, len(got))
			for _, l := range got {
				gotIDs[l.ID] = true
			}
			for _, id := range tt.wantIDs {
				if !gotIDs[id] {
					t.Errorf("ApplyFilters() missing listing %d", id)
				}
			}
		})
	}
}

func TestSortListings(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		wantFirst int64
	}{
		{name: "newest", sortBy: SortByNewest, wantFirst: 4},
		{name: "oldest", sortBy: SortByOldest, wantFirst: 1},
		{name: "most bumped", sortBy: SortByMostBumped, wantFirst: 3},
		{name: "members", sortBy: SortByMembers, wantFirst: 3},
		{name: "alphabetical", sortBy: SortByAlphabetical, wantFirst: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings := testListings()
			SortListings(listings, tt.sortBy)
			if listings[0].ID != tt.wantFirst {
				t.Errorf("SortListings(%q) first = %d, want %d", tt.sortBy, listings[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestPaginateListings(t *testing.T) {
	listings := testListings()

	page, totalPages := PaginateListings(listings, 0, 3)
	if len(page) != 3 || totalPages != 2 {
		t.Errorf("page 0: got %d items, %d pages, want 3 items, 2 pages", len(page), totalPages)
	}

	page, totalPages = PaginateListings(listings, 1, 3)
	if len(page) != 1 || totalPages != 2 {
		t.Errorf("page 1: got %d items, %d pages, want 1 item, 2 pages", len(page), totalPages)
	}

	// Out-of-range pages clamp to the last page
	page, _ = PaginateListings(listings, 99, 3)
	if len(page) != 1 {
		t.Errorf("clamped page: got %d items, want 1", len(page))
	}

	page, totalPages = PaginateListings(nil, 0, 3)
	if len(page) != 0 || totalPages != 1 {
		t.Errorf("empty input: got %d items, %d pages, want 0 items, 1 page", len(page), totalPages)
	}
}
