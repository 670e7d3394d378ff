package catalog

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlaceholderImage is used for cuisines without curated artwork.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

var knownCuisines = map[string]models.Cuisine{
	"chinese": {
		ID:          "chinese",
		Name:        "Chinese",
		ImageURL:    "https://www.top10berlin.de/wp-content/uploads/2023/11/top10berlin_feedback002.jpg",
		Description: "Traditional Chinese cuisine with authentic flavors",
	},
	"indian": {
		ID:          "indian",
		Name:        "Indian",
		ImageURL:    "https://www.top10berlin.de/wp-content/uploads/2023/11/top10berlin_szene-fruehstueck_paulinski-palme001.jpg",
		Description: "Rich and diverse Indian culinary traditions",
	},
	"italian": {
		ID:          "italian",
		Name:        "Italian",
		ImageURL:    "https://www.top10berlin.de/wp-content/uploads/2023/11/top10berlin_chai-ji.jpg",
		Description: "Classic Italian dishes with Mediterranean flair",
	},
}

var wordSeparators = strings.NewReplacer("_", " ", "-", " ")

// displayName turns a cuisine key such as "middle_eastern" into
// "Middle Eastern".
func displayName(id string) string {
	return cases.Title(language.English).String(wordSeparators.Replace(id))
}

// NormalizeCuisines lists the cuisines of payload sorted by id.
func NormalizeCuisines(payload models.CuisinesPayload) []models.Cuisine {
	ids := cuisineIDs(payload)
	out := make([]models.Cuisine, 0, len(ids))
	for _, id := range ids {
		if c, ok := knownCuisines[id]; ok {
			out = append(out, c)
			continue
		}
		out = append(out, models.Cuisine{
			ID:       id,
			Name:     displayName(id),
			ImageURL: PlaceholderImage,
		})
	}
	return out
}

// restaurantsOf returns the restaurants of one cuisine, open ones first,
// each tagged with its cuisine and opening status.
func restaurantsOf(cuisineID string, data models.CuisineData) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(data.Open)+len(data.Close))
	for _, r := range data.Open {
		r.IsOpen = true
		r.CuisineID = cuisineID
		out = append(out, r)
	}
	for _, r := range data.Close {
		r.IsOpen = false
		r.CuisineID = cuisineID
		out = append(out, r)
	}
	return out
}

// paginate returns the 1-based page of list. A nil page returns list.
func paginate(list []models.Restaurant, page *models.Page) []models.Restaurant {
	if page == nil {
		return list
	}
	n, limit := page.Number, page.Limit
	if n < 1 {
		n = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	start := (n - 1) * limit
	if start >= len(list) {
		return []models.Restaurant{}
	}
	end := min(start+limit, len(list))
	return list[start:end]
}

func cuisineIDs(payload models.CuisinesPayload) []string {
	ids := make([]string, 0, len(payload))
	for id := range payload {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
