package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	mw "github.com/sidequest-app/sidequest/server/middleware"
	"github.com/sidequest-app/sidequest/server/model"
	"gorm.io/gorm"
)

// ProfileHandler handles the user profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Get handles GET /api/profile. A user without a saved profile gets an empty
// one rather than a 404, so clients can treat it as always-present.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := mw.GetUserID(c)

	var rec model.Profile
	err := h.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"profile": model.UserProfile{}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	snapshot, err := rec.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": snapshot, "updated_at": rec.UpdatedAt})
}

type putProfileRequest struct {
	Skills                []string           `json:"skills"`
	AvailableHoursPerWeek int                `json:"available_hours_per_week" binding:"min=0,max=168"`
	Resources             []string           `json:"resources"`
	Goals                 []string           `json:"goals"`
	Interests             []string           `json:"interests"`
	LocationType          model.LocationType `json:"location_type"`
}

// Put handles PUT /api/profile, replacing the whole profile.
func (h *ProfileHandler) Put(c *gin.Context) {
	userID := mw.GetUserID(c)

	var req putProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.LocationType {
	case model.LocationRemote, model.LocationLocal, model.LocationHybrid, "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location_type"})
		return
	}

	snapshot := model.UserProfile{
		Skills:                req.Skills,
		AvailableHoursPerWeek: req.AvailableHoursPerWeek,
		Resources:             req.Resources,
		Goals:                 req.Goals,
		Interests:             req.Interests,
		LocationType:          req.LocationType,
	}

	var rec model.Profile
	err := h.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = model.Profile{UserID: userID}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if err := rec.SetSnapshot(snapshot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if err := h.db.Save(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": snapshot})
}

// loadSnapshot fetches the stored profile snapshot for generation calls.
// Missing or corrupt profiles yield the zero snapshot; the generation
// encoder substitutes defaults for empty fields.
func loadSnapshot(db *gorm.DB, userID int64) model.UserProfile {
	var rec model.Profile
	if err := db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
		return model.UserProfile{}
	}
	snapshot, err := rec.Snapshot()
	if err != nil {
		return model.UserProfile{}
	}
	return snapshot
}
