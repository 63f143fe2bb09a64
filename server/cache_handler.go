package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/blogx/errors"
	"github.com/techagentng/blogx/server/response"
)

// handleClearPageCache drops every cached page immediately. Administrative
// only; the timer-based expiry handles everything else.
func (s *Server) handleClearPageCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			redirectToLogin(c)
			return
		}
		if !user.IsAdmin {
			respondError(c, apiError.ErrForbidden)
			return
		}

		s.PageCache.Clear(c.Request.Context())
		response.JSON(c, "page cache cleared", http.StatusOK, nil, nil)
	}
}
