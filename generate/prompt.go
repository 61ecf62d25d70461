package generate

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sidequest-app/sidequest/server/model"
)

// SystemPrompt is the instruction sent as the system message on every
// generation call. It demands a bare JSON array; the extraction layer still
// tolerates fenced and object-wrapped responses.
const SystemPrompt = `You are a side hustle advisor. Respond with a bare JSON array only: ` +
	`no prose, no markdown fences, no wrapper object. Each element must have exactly these keys: ` +
	`title, category, earnings_min, earnings_max, time_to_first_dollar_hours, difficulty, ` +
	`startup_cost, why_recommended, action_steps, required_skills, required_resources, ` +
	`platforms, common_pitfalls, rarity. ` +
	`category is one of freelance, service, content, digital_product, ecommerce, gig. ` +
	`difficulty is an integer from 1 to 5. rarity is one of common, rare, legendary.`

// nicheCatalog is the fixed pool of diversity niches. Three are drawn per call
// so repeated generations for the same profile do not collapse to the same
// three suggestions.
var nicheCatalog = [...]string{
	"pet services",
	"local errands",
	"online tutoring",
	"print on demand",
	"voice-over work",
	"newsletter writing",
	"no-code automation",
	"reselling and flipping",
	"short-form video editing",
	"digital templates",
	"home organization",
	"language exchange",
	"micro-consulting",
	"community management",
	"data labeling",
}

// Defaults substituted when profile fields are empty, so the encoder never
// emits a degenerate prompt.
var (
	defaultSkills    = []string{"communication", "organization", "basic computer use"}
	defaultGoals     = []string{"extra-income"}
	defaultInterests = []string{"learning new things"}
)

const defaultHoursPerWeek = 5

// Encoder turns a user profile into a generation instruction. All randomness
// in the pipeline lives here, behind an injectable source.
type Encoder struct {
	rng *rand.Rand
}

// NewEncoder creates an Encoder. A nil source is seeded from the clock.
func NewEncoder(rng *rand.Rand) *Encoder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Encoder{rng: rng}
}

// Encode builds the user instruction for the given profile and returns it
// together with the diversity niches drawn for this call.
func (e *Encoder) Encode(p model.UserProfile) (string, []string) {
	skills := orDefault(p.Skills, defaultSkills)
	goals := orDefault(p.Goals, defaultGoals)
	interests := orDefault(p.Interests, defaultInterests)
	hours := p.AvailableHoursPerWeek
	if hours <= 0 {
		hours = defaultHoursPerWeek
	}
	location := p.LocationType
	if location == "" {
		location = model.LocationRemote
	}

	niches := e.pickNiches(3)

	var b strings.Builder
	fmt.Fprintf(&b, "Suggest exactly 3 side hustles for this person.\n")
	fmt.Fprintf(&b, "Skills: %s.\n", strings.Join(skills, ", "))
	fmt.Fprintf(&b, "Available hours per week: %d.\n", hours)
	if len(p.Resources) > 0 {
		fmt.Fprintf(&b, "Resources on hand: %s.\n", strings.Join(p.Resources, ", "))
	}
	fmt.Fprintf(&b, "Goals: %s.\n", strings.Join(goals, ", "))
	fmt.Fprintf(&b, "Interests: %s.\n", strings.Join(interests, ", "))
	fmt.Fprintf(&b, "Work location preference: %s.\n", location)
	fmt.Fprintf(&b, "For variety, consider angles from these niches where they fit: %s.\n",
		strings.Join(niches, ", "))

	return b.String(), niches
}

// pickNiches draws n distinct niches uniformly from the catalog.
func (e *Encoder) pickNiches(n int) []string {
	idx := e.rng.Perm(len(nicheCatalog))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = nicheCatalog[idx[i]]
	}
	return out
}

func orDefault(vals, fallback []string) []string {
	if len(vals) == 0 {
		return fallback
	}
	return vals
}
