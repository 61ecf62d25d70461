package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidequest-app/sidequest/server/cache"
	"github.com/sidequest-app/sidequest/server/generate"
	mw "github.com/sidequest-app/sidequest/server/middleware"
	"github.com/sidequest-app/sidequest/server/model"
	"github.com/sidequest-app/sidequest/server/quest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestHandler handles the quest lifecycle and generation endpoints.
type QuestHandler struct {
	db       *gorm.DB
	repo     *quest.Repository
	gateway  *generate.Gateway
	cache    cache.Cache
	cooldown time.Duration
	logger   *zap.Logger
}

// NewQuestHandler creates a new QuestHandler.
func NewQuestHandler(db *gorm.DB, repo *quest.Repository, gw *generate.Gateway, c cache.Cache, cooldown time.Duration, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{db: db, repo: repo, gateway: gw, cache: c, cooldown: cooldown, logger: logger}
}

func (h *QuestHandler) ctx(c *gin.Context) context.Context {
	return quest.WithTraceID(c.Request.Context(), mw.GetTraceID(c))
}

// ensure loads the caller's quest state into memory before serving.
func (h *QuestHandler) ensure(c *gin.Context) (context.Context, int64, bool) {
	userID := mw.GetUserID(c)
	ctx := h.ctx(c)
	if err := h.repo.EnsureLoaded(ctx, userID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quest state unavailable"})
		return ctx, userID, false
	}
	return ctx, userID, true
}

type generateRequest struct {
	Profile *model.UserProfile `json:"profile"`
}

// Generate handles POST /api/quests/generate.
// The inline profile overrides the stored one for this call only. Repeated
// calls inside the cooldown window are rejected with 429.
func (h *QuestHandler) Generate(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if h.cooldown > 0 {
		lockKey := fmt.Sprintf("genlock:%d", userID)
		lockCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		acquired, err := h.cache.SetNX(lockCtx, lockKey, "1", h.cooldown)
		cancel()
		if err != nil {
			h.logger.Warn("generation lock check failed", zap.Error(err))
		} else if !acquired {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "generation cooldown active"})
			return
		}
	}

	profile := loadSnapshot(h.db, userID)
	if req.Profile != nil {
		profile = *req.Profile
	}

	batch := h.gateway.Generate(ctx, profile)
	quests, err := h.repo.AddGenerated(ctx, userID, batch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

// Refresh handles POST /api/quests/refresh.
// It forces a full reload from the store, making persisted state
// authoritative again after any failed optimistic writes.
func (h *QuestHandler) Refresh(c *gin.Context) {
	userID := mw.GetUserID(c)
	ctx := h.ctx(c)
	if err := h.repo.Initialize(ctx, userID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": h.repo.All(ctx, userID)})
}

// List handles GET /api/quests?view=suggested|active|completed|all.
func (h *QuestHandler) List(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}

	view := c.DefaultQuery("view", "all")
	var quests []model.Quest
	switch view {
	case "all":
		quests = h.repo.All(ctx, userID)
	case "suggested":
		quests = h.repo.Suggested(ctx, userID)
	case "active":
		quests = h.repo.Active(ctx, userID)
	case "completed":
		quests = h.repo.Completed(ctx, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

// Get handles GET /api/quests/:id.
func (h *QuestHandler) Get(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}
	q, err := h.repo.Get(ctx, userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest": q})
}

type createQuestRequest struct {
	model.QuestData
}

// Create handles POST /api/quests, adding a user-authored quest.
func (h *QuestHandler) Create(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}

	var req createQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	q, err := h.repo.AddQuest(ctx, userID, req.QuestData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quest": q})
}

// Start handles POST /api/quests/:id/start.
func (h *QuestHandler) Start(c *gin.Context) {
	h.transition(c, h.repo.StartQuest)
}

// Complete handles POST /api/quests/:id/complete.
func (h *QuestHandler) Complete(c *gin.Context) {
	h.transition(c, h.repo.CompleteQuest)
}

// Archive handles POST /api/quests/:id/archive.
func (h *QuestHandler) Archive(c *gin.Context) {
	h.transition(c, h.repo.ArchiveQuest)
}

func (h *QuestHandler) transition(c *gin.Context, fn func(context.Context, int64, string) (model.Quest, error)) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}
	q, err := fn(ctx, userID, c.Param("id"))
	if errors.Is(err, quest.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest": q})
}

type patchDataRequest struct {
	Title          *string   `json:"title"`
	WhyRecommended *string   `json:"why_recommended"`
	ActionSteps    *[]string `json:"action_steps"`
	CompletedSteps *[]int    `json:"completed_steps"`
}

// PatchData handles PATCH /api/quests/:id/data.
func (h *QuestHandler) PatchData(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}

	var req patchDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := h.repo.UpdateQuestData(ctx, userID, c.Param("id"), quest.DataPatch{
		Title:          req.Title,
		WhyRecommended: req.WhyRecommended,
		ActionSteps:    req.ActionSteps,
		CompletedSteps: req.CompletedSteps,
	})
	if errors.Is(err, quest.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest": q})
}

// ToggleStep handles POST /api/quests/:id/steps/:index/toggle.
func (h *QuestHandler) ToggleStep(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}

	step, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step index"})
		return
	}

	q, err := h.repo.ToggleStep(ctx, userID, c.Param("id"), step)
	if errors.Is(err, quest.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		return
	}
	if errors.Is(err, quest.ErrInvalidStep) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step index out of range"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest": q})
}

// Delete handles DELETE /api/quests/:id.
func (h *QuestHandler) Delete(c *gin.Context) {
	ctx, userID, ok := h.ensure(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteQuest(ctx, userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
