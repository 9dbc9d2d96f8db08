package handlers

import (
	"errors"
	"net/http"

	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" binding:"notblank"`
	Skills         string `json:"skills" binding:"notblank"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

var profileMessages = Messages{
	"status.notblank": "Status is required",
	"skills.notblank": "Skills is required",
}

// Me GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if errors.Is(err, services.ErrProfileNotFound) {
		respondMsg(c, http.StatusBadRequest, "There is no profile for this user")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Save POST /api/profile，不存在则创建，存在则更新
func (h *ProfileHandler) Save(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req, profileMessages) {
		return
	}

	profile, err := h.profiles.Save(c.Request.Context(), middleware.CurrentUserID(c), services.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.Social{
			YouTube:   req.YouTube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			LinkedIn:  req.LinkedIn,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// List GET /api/profile
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ByUser GET /api/profile/user/:userId
func (h *ProfileHandler) ByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		respondMsg(c, http.StatusBadRequest, "Profile not found")
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if errors.Is(err, services.ErrProfileNotFound) {
		respondMsg(c, http.StatusBadRequest, "Profile not found")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
