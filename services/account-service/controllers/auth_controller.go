package controllers

import (
	"net/http"
	"time"

	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/services"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service      services.AuthService
	secureCookie bool
}

func NewAuthController(service services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{service: service, secureCookie: secureCookie}
}

func (ac *AuthController) setTokenCookies(c *gin.Context, resp *models.AuthResponse) {
	now := time.Now()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, resp.AccessToken, int(resp.AccessExpiresAt.Sub(now).Seconds()), "/", "", ac.secureCookie, true)
	c.SetCookie(middleware.RefreshCookie, resp.RefreshToken, int(resp.RefreshExpiresAt.Sub(now).Seconds()), "/", "", ac.secureCookie, true)
}

func (ac *AuthController) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", ac.secureCookie, true)
	c.SetCookie(middleware.RefreshCookie, "", -1, "/", "", ac.secureCookie, true)
}

// SignUp handles POST /auth/signup.
func (ac *AuthController) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	resp, err := ac.service.SignUp(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ac.setTokenCookies(c, resp)
	c.JSON(http.StatusCreated, resp)
}

// SignIn handles POST /auth/signin.
func (ac *AuthController) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	resp, err := ac.service.SignIn(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ac.setTokenCookies(c, resp)
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh. The token comes from the body or the
// refresh_token cookie.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(middleware.RefreshCookie)
	}
	resp, err := ac.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ac.clearTokenCookies(c)
		apperrors.Respond(c, err)
		return
	}
	ac.setTokenCookies(c, resp)
	c.JSON(http.StatusOK, resp)
}

// SignOut handles POST /auth/signout. Cookies are cleared even for
// anonymous callers.
func (ac *AuthController) SignOut(c *gin.Context) {
	if userID, ok := middleware.UserID(c); ok {
		if err := ac.service.SignOut(c.Request.Context(), userID); err != nil {
			apperrors.Respond(c, err)
			return
		}
	}
	ac.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me handles GET /auth/me and answers {"user": null} when signed out.
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	user, err := ac.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
