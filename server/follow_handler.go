package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/blogx/server/response"
)

// handleFollowIndex serves the feed of posts by followed authors.
func (s *Server) handleFollowIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			redirectToLogin(c)
			return
		}
		page, apiErr := s.FollowService.GetFeedPage(user.ID, pageNumber(c))
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "follow feed", http.StatusOK, page, nil)
	}
}

func (s *Server) handleFollowAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			redirectToLogin(c)
			return
		}
		author, apiErr := s.FollowService.FollowAuthor(user.ID, c.Param("username"))
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
	}
}

func (s *Server) handleUnfollowAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			redirectToLogin(c)
			return
		}
		author, apiErr := s.FollowService.UnfollowAuthor(user.ID, c.Param("username"))
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
	}
}
