package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/sahilm/fuzzy"
)

// Sort orders for listing views
const (
	SortByNewest       = "newest"
	SortByOldest       = "oldest"
	SortByMostBumped   = "most_bumped"
	SortByMembers      = "members"
	SortByAlphabetical = "alphabetical"
)

// Member count buckets
const (
	BucketSmall  = "small"
	BucketMedium = "medium"
	BucketLarge  = "large"
)

// Common filter options that can be reused across commands
var CommonFilterOptions = []discord.ApplicationCommandOption{
	discord.ApplicationCommandOptionString{
		Name:        "query",
		Description: "Filter by name or description",
		Required:    false,
	},
	discord.ApplicationCommandOptionString{
		Name:        "type",
		Description: "Filter by listing type",
		Required:    false,
		Choices: []discord.ApplicationCommandOptionChoiceString{
			{Name: "Servers", Value: string(models.ListingTypeServer)},
			{Name: "Bots", Value: string(models.ListingTypeBot)},
		},
	},
	discord.ApplicationCommandOptionString{
		Name:        "members",
		Description: "Filter by community size",
		Required:    false,
		Choices: []discord.ApplicationCommandOptionChoiceString{
			{Name: "Small (up to 100)", Value: BucketSmall},
			{Name: "Medium (101-1000)", Value: BucketMedium},
			{Name: "Large (over 1000)", Value: BucketLarge},
		},
	},
	discord.ApplicationCommandOptionBool{
		Name:        "featured",
		Description: "Featured listings only",
		Required:    false,
	},
	discord.ApplicationCommandOptionString{
		Name:        "sort",
		Description: "Sort order",
		Required:    false,
		Choices: []discord.ApplicationCommandOptionChoiceString{
			{Name: "Newest", Value: SortByNewest},
			{Name: "Oldest", Value: SortByOldest},
			{Name: "Most Bumped", Value: SortByMostBumped},
			{Name: "Most Members", Value: SortByMembers},
			{Name: "Alphabetical", Value: SortByAlphabetical},
		},
	},
}

// ListingFilters holds all possible filter criteria
type ListingFilters struct {
	Query        string
	Type         string
	MemberBucket string
	Featured     bool
	SortBy       string
}

// listingSearchItems implements fuzzy.Source over name and description.
type listingSearchItems []*models.Listing

func (items listingSearchItems) Len() int {
	return len(items)
}

func (items listingSearchItems) String(i int) string {
	return strings.ToLower(items[i].Name + " " + items[i].Description)
}

// MemberBucket assigns a listing's member count to a size bucket.
func MemberBucket(memberCount int) string {
	switch {
	case memberCount <= config.SmallCommunityMax:
		return BucketSmall
	case memberCount <= config.MediumCommunityMax:
		return BucketMedium
	default:
		return BucketLarge
	}
}

// ApplyFilters narrows a listing slice by type, size bucket, featured flag
// and free-text query. Fuzzy matches come back ordered by relevance, so the
// query filter is applied last to preserve that ordering.
func ApplyFilters(listings []*models.Listing, filters ListingFilters) []*models.Listing {
	filtered := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if filters.Type != "" && string(l.Type) != filters.Type {
			continue
		}
		if filters.MemberBucket != "" && MemberBucket(l.MemberCount) != filters.MemberBucket {
			continue
		}
		if filters.Featured && !l.Featured {
			continue
		}
		filtered = append(filtered, l)
	}

	if filters.Query == "" {
		return filtered
	}

	matches := fuzzy.FindFrom(strings.ToLower(filters.Query), listingSearchItems(filtered))
	results := make([]*models.Listing, len(matches))
	for i, match := range matches {
		results[i] = filtered[match.Index]
	}
	return results
}

// SortListings orders listings in place by the requested comparator.
// The zero value keeps the store's recency order (most recently bumped first).
func SortListings(listings []*models.Listing, sortBy string) {
	switch sortBy {
	case SortByNewest:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	case SortByOldest:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CreatedAt.Before(listings[j].CreatedAt)
		})
	case SortByMostBumped:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].BumpCount > listings[j].BumpCount
		})
	case SortByMembers:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].MemberCount > listings[j].MemberCount
		})
	case SortByAlphabetical:
		sort.SliceStable(listings, func(i, j int) bool {
			return strings.ToLower(listings[i].Name) < strings.ToLower(listings[j].Name)
		})
	}
}

// PaginateListings slices one page out of an already filtered and sorted
// list and reports the total page count (at least 1).
func PaginateListings(listings []*models.Listing, page, pageSize int) ([]*models.Listing, int) {
	if pageSize <= 0 {
		pageSize = config.ListingsPerPage
	}

	totalPages := (len(listings) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * pageSize
	end := start + pageSize
	if start >= len(listings) {
		return nil, totalPages
	}
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end], totalPages
}

// BuildFilterDescription creates a formatted string of active filters
func BuildFilterDescription(filters ListingFilters) string {
	if !HasActiveFilters(filters) {
		return ""
	}

	var filterLines []string

	if filters.Query != "" {
		filterLines = append(filterLines, formatFilterLine("📝 Query", filters.Query))
	}
	if filters.Type != "" {
		filterLines = append(filterLines, formatFilterLine("🗂️ Type", FormatListingType(filters.Type)))
	}
	if filters.MemberBucket != "" {
		filterLines = append(filterLines, formatFilterLine("👥 Size", filters.MemberBucket))
	}
	if filters.Featured {
		filterLines = append(filterLines, "⭐ Featured Only")
	}

	return "```md\n# Active Filters\n* " + strings.Join(filterLines, "\n* ") + "\n```"
}

// HasActiveFilters checks if any filters are active
func HasActiveFilters(filters ListingFilters) bool {
	return filters.Query != "" ||
		filters.Type != "" ||
		filters.MemberBucket != "" ||
		filters.Featured
}

// FormatListingType converts internal type names to display names
func FormatListingType(listingType string) string {
	switch listingType {
	case string(models.ListingTypeServer):
		return "💬 Server"
	case string(models.ListingTypeBot):
		return "🤖 Bot"
	default:
		return listingType
	}
}

func formatFilterLine(label string, value interface{}) string {
	return fmt.Sprintf("%s: %v", label, value)
}
