package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/impactlink/engage/internal/hashtag"
)

type CreatePostRequest struct {
	Content string `json:"content"`
}

type UpdateProfileRequest struct {
	UpdatedFields []string `json:"updated_fields"`
}

type AddSkillRequest struct {
	Skill string `json:"skill"`
}

type SetVerificationRequest struct {
	Status string `json:"status"`
}

type CreateServiceRequest struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

func (s *Server) CreatePost(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	postID := s.genID.Generate()
	if err := s.activitySvc.TrackPostCreation(c.Request.Context(), data.UserID, postID, req.Content); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post_id":  postID.String(),
		"hashtags": hashtag.Extract(req.Content),
	})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.UpdatedFields) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.activitySvc.TrackProfileUpdate(c.Request.Context(), data.UserID, req.UpdatedFields); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) AddSkill(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Skill) == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.activitySvc.TrackSkillAdd(c.Request.Context(), data.UserID, req.Skill); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) SetVerification(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.activitySvc.TrackVerification(c.Request.Context(), data.UserID, req.Status); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) CreateService(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	serviceID := s.genID.Generate()
	err := s.activitySvc.TrackServiceCreation(c.Request.Context(), data.UserID, serviceID, req.Kind, req.Title)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service_id": serviceID.String()})
}

func (s *Server) Feed(c *gin.Context) {
	limit := intQuery(c, "limit", 20)

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		since = parsed
	}

	items, err := s.activitySvc.Recent(c.Request.Context(), limit, since)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) TrendingTags(c *gin.Context) {
	limit := intQuery(c, "limit", 10)

	tags, err := s.trendingSvc.TopTrending(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
