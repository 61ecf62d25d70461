package model

// QuestCategory classifies a side hustle.
type QuestCategory string

const (
	CategoryFreelance QuestCategory = "freelance"
	CategoryService   QuestCategory = "service"
	CategoryContent   QuestCategory = "content"
	CategoryDigital   QuestCategory = "digital_product"
	CategoryEcommerce QuestCategory = "ecommerce"
	CategoryGig       QuestCategory = "gig"
)

// QuestRarity is an optional flavor tag on a recommendation.
type QuestRarity string

const (
	RarityCommon    QuestRarity = "common"
	RarityRare      QuestRarity = "rare"
	RarityLegendary QuestRarity = "legendary"
)

// QuestData is the descriptive payload of a quest. It is produced by the AI
// generation path or the local catalog engine and embedded in a Quest record.
type QuestData struct {
	Title                  string        `json:"title"`
	Category               QuestCategory `json:"category"`
	EarningsMin            float64       `json:"earnings_min"`
	EarningsMax            float64       `json:"earnings_max"`
	TimeToFirstDollarHours float64       `json:"time_to_first_dollar_hours"`
	Difficulty             int           `json:"difficulty"` // 1..5
	StartupCost            float64       `json:"startup_cost"`
	WhyRecommended         string        `json:"why_recommended"`
	ActionSteps            []string      `json:"action_steps"`
	RequiredSkills         []string      `json:"required_skills"`
	RequiredResources      []string      `json:"required_resources"`
	Platforms              []string      `json:"platforms"`
	CommonPitfalls         []string      `json:"common_pitfalls,omitempty"`
	Rarity                 QuestRarity   `json:"rarity,omitempty"`
	Progress               int           `json:"progress,omitempty"`        // 0..100
	CompletedSteps         []int         `json:"completed_steps,omitempty"` // indices into ActionSteps
}
