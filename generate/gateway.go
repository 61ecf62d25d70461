package generate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sidequest-app/sidequest/server/llm"
	"github.com/sidequest-app/sidequest/server/model"
	"go.uber.org/zap"
)

// Gateway produces quest recommendations. It tries the AI completion path
// first and degrades silently to the deterministic catalog engine on any
// failure; callers always get a usable result and never an error.
type Gateway struct {
	client  llm.Client
	hasKey  bool
	encoder *Encoder
	engine  *Engine
	logger  *zap.Logger
}

// NewGateway creates a Gateway for the given endpoint configuration.
// An empty API key disables the AI path entirely.
func NewGateway(cfg llm.Config, logger *zap.Logger) *Gateway {
	return &Gateway{
		client:  llm.NewClient(cfg),
		hasKey:  cfg.APIKey != "",
		encoder: NewEncoder(nil),
		engine:  NewEngine(),
		logger:  logger,
	}
}

// Generate returns recommendations for the profile: exactly 3 on the AI path,
// up to 3 from the local engine otherwise.
func (g *Gateway) Generate(ctx context.Context, profile model.UserProfile) []model.QuestData {
	if !g.hasKey {
		return g.engine.Recommend(profile)
	}

	prompt, niches := g.encoder.Encode(profile)
	g.logger.Debug("generation niches", zap.Strings("niches", niches))

	content, err := g.client.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		g.logger.Warn("generation call failed, using local engine", zap.Error(err))
		return g.engine.Recommend(profile)
	}

	items, err := llm.ExtractArray(content)
	if err != nil {
		g.logger.Warn("generation response unusable, using local engine", zap.Error(err))
		return g.engine.Recommend(profile)
	}

	quests := make([]model.QuestData, 0, maxRecommendations)
	for _, raw := range items {
		var d model.QuestData
		if err := json.Unmarshal(raw, &d); err != nil {
			g.logger.Debug("skipping malformed quest element", zap.Error(err))
			continue
		}
		if strings.TrimSpace(d.Title) == "" {
			continue
		}
		sanitize(&d)
		quests = append(quests, d)
		if len(quests) == maxRecommendations {
			break
		}
	}
	if len(quests) == 0 {
		g.logger.Warn("generation produced no usable quests, using local engine")
		return g.engine.Recommend(profile)
	}
	return quests
}

// sanitize enforces QuestData invariants on untrusted model output.
func sanitize(d *model.QuestData) {
	if d.Difficulty < 1 {
		d.Difficulty = 1
	}
	if d.Difficulty > 5 {
		d.Difficulty = 5
	}
	if d.EarningsMin < 0 {
		d.EarningsMin = 0
	}
	if d.EarningsMax < 0 {
		d.EarningsMax = 0
	}
	if d.EarningsMin > d.EarningsMax {
		d.EarningsMin, d.EarningsMax = d.EarningsMax, d.EarningsMin
	}
	if d.TimeToFirstDollarHours < 0 {
		d.TimeToFirstDollarHours = 0
	}
	if d.StartupCost < 0 {
		d.StartupCost = 0
	}
	switch d.Category {
	case model.CategoryFreelance, model.CategoryService, model.CategoryContent,
		model.CategoryDigital, model.CategoryEcommerce, model.CategoryGig:
	default:
		d.Category = model.CategoryFreelance
	}
	switch d.Rarity {
	case model.RarityCommon, model.RarityRare, model.RarityLegendary, "":
	default:
		d.Rarity = model.RarityCommon
	}
	// Fresh suggestions never carry progress state.
	d.Progress = 0
	d.CompletedSteps = nil
}
