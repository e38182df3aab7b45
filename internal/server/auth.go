package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	userdomain "github.com/impactlink/engage/internal/user/domain"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	DisplayName        string `json:"display_name"`
	Role               string `json:"role"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	VerificationStatus string `json:"verification_status"`
}

type sessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userView  `json:"user"`
}

func viewOf(user *userdomain.User) userView {
	return userView{
		ID:                 user.ID.String(),
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		Role:               string(user.Role),
		AvatarURL:          user.AvatarURL,
		VerificationStatus: user.VerificationStatus,
	}
}

func (s *Server) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.Register(c.Request.Context(), userdomain.RegisterRequest{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        sessiondomain.UserRole(req.Role),
		Password:    req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.openSession(c, user)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{
		SessionID: result.SessionID.String(),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      viewOf(user),
	})
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			s.recordFailedLogin(c, req.Email)
		}
		AbortWithError(c, err)
		return
	}

	result, err := s.openSession(c, user)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		SessionID: result.SessionID.String(),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      viewOf(user),
	})
}

func (s *Server) Logout(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.sessionSvc.Revoke(c.Request.Context(), data.SessionID); err != nil {
		AbortWithError(c, err)
		return
	}

	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) LogoutAll(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.sessionSvc.RevokeAll(c.Request.Context(), data.UserID); err != nil {
		AbortWithError(c, err)
		return
	}

	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListSessions(c *gin.Context) {
	data := currentSession(c)
	if data == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sessions, err := s.sessionSvc.ListActive(c.Request.Context(), data.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) openSession(c *gin.Context, user *userdomain.User) (*sessiondomain.CreateResult, error) {
	result, err := s.sessionSvc.Create(c.Request.Context(), sessiondomain.CreateRequest{
		UserID:        user.ID,
		Role:          user.Role,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		UserAgent:     c.Request.UserAgent(),
		XForwardedFor: c.GetHeader("X-Forwarded-For"),
		XRealIP:       c.GetHeader("X-Real-IP"),
		RemoteAddr:    c.Request.RemoteAddr,
	})
	if err != nil {
		return nil, err
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, result.Token, maxAge, "/", "", s.cfg.AuthCookieSecure, true)
	return result, nil
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
}

// recordFailedLogin keeps an audit row for failed attempts against known
// accounts. Unknown emails leave no trace; the 401 stays uniform either way.
func (s *Server) recordFailedLogin(c *gin.Context, email string) {
	user, err := s.userSvc.FindByEmail(c.Request.Context(), email)
	if err != nil {
		return
	}
	err = s.sessionSvc.RecordFailedLogin(c.Request.Context(), user.ID, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		s.log.Warn("failed login audit write failed", zap.Error(err))
	}
}
