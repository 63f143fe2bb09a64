package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/blogx/errors"
	"github.com/techagentng/blogx/models"
)

// handleAddComment attaches a comment to a post. Validation failures are
// dropped without feedback; the request redirects to the post detail either
// way. An unknown post is still a not-found response.
func (s *Server) handleAddComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			redirectToLogin(c)
			return
		}
		id, ok := parseIDParam(c)
		if !ok {
			respondError(c, apiError.New("post not found", http.StatusNotFound))
			return
		}

		var request models.CommentRequest
		_ = c.ShouldBind(&request)
		_ = models.NormalizeWhitespace(&request)

		if apiErr := s.PostService.AddComment(user.ID, id, &request); apiErr != nil {
			respondError(c, apiErr)
			return
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", id))
	}
}
