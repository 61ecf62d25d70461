package generate

import (
	"sort"
	"strings"

	"github.com/sidequest-app/sidequest/server/model"
)

const maxRecommendations = 3

// Engine is the deterministic offline recommendation engine. Given the same
// profile and catalog it always produces the same ordered output.
type Engine struct {
	catalog []CatalogEntry
}

// NewEngine creates an Engine over the built-in catalog.
func NewEngine() *Engine {
	return &Engine{catalog: Catalog}
}

// NewEngineWithCatalog creates an Engine over a custom catalog.
func NewEngineWithCatalog(catalog []CatalogEntry) *Engine {
	return &Engine{catalog: catalog}
}

// Recommend scores the catalog against the profile and returns up to 3
// entries mapped into QuestData. Entries whose minimum weekly hours exceed
// the user's budget are filtered out first; the result may be short or empty.
func (e *Engine) Recommend(p model.UserProfile) []model.QuestData {
	type scored struct {
		entry CatalogEntry
		score int
	}

	var candidates []scored
	for _, entry := range e.catalog {
		if entry.MinHoursPerWeek > p.AvailableHoursPerWeek {
			continue
		}
		candidates = append(candidates, scored{entry: entry, score: skillScore(entry.Skills, p.Skills)})
	}

	// Stable: ties keep catalog order, so output is reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := len(candidates)
	if n > maxRecommendations {
		n = maxRecommendations
	}
	out := make([]model.QuestData, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.entry.questData())
	}
	return out
}

// skillScore counts catalog skill tags that match any user skill, where a
// match is a case-insensitive substring hit in either direction.
func skillScore(entrySkills, userSkills []string) int {
	score := 0
	for _, es := range entrySkills {
		el := strings.ToLower(es)
		for _, us := range userSkills {
			ul := strings.ToLower(us)
			if strings.Contains(el, ul) || strings.Contains(ul, el) {
				score++
				break
			}
		}
	}
	return score
}

func (c CatalogEntry) questData() model.QuestData {
	return model.QuestData{
		Title:                  c.Title,
		Category:               c.Category,
		EarningsMin:            c.EarningsMin,
		EarningsMax:            c.EarningsMax,
		TimeToFirstDollarHours: c.TimeToFirstDollarHours,
		Difficulty:             c.Difficulty,
		StartupCost:            c.StartupCost,
		WhyRecommended:         c.WhyRecommended,
		ActionSteps:            c.ActionSteps,
		RequiredSkills:         c.Skills,
		RequiredResources:      c.RequiredResources,
		Platforms:              c.Platforms,
		CommonPitfalls:         c.CommonPitfalls,
		Rarity:                 c.Rarity,
	}
}
