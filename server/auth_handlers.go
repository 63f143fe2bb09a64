package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/blogx/models"
	"github.com/techagentng/blogx/server/response"
	jwtPackage "github.com/techagentng/blogx/services/jwt"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "validation failed", http.StatusBadRequest,
				gin.H{"errors": models.TranslateError(err)}, nil)
			return
		}
		if err := models.NormalizeWhitespace(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, apiErr := s.AuthService.SignupUser(&request)
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, user.Response(), nil)
	}
}

// handleLoginForm renders the login page context. It is also the target of
// the auth redirects, so the preserved destination is echoed back.
func (s *Server) handleLoginForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "login", http.StatusOK, gin.H{"next": c.Query("next")}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.LoginRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "validation failed", http.StatusBadRequest,
				gin.H{"errors": models.TranslateError(err)}, nil)
			return
		}
		if err := models.NormalizeWhitespace(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&request)
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}

		c.SetCookie(authCookieName, loginResponse.AccessToken,
			int(jwtPackage.AccessTokenValidity.Seconds()), "/", "", false, true)
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(authCookieName, "", -1, "/", "", false, true)
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}
