package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/blogx/errors"
	"github.com/techagentng/blogx/models"
	"github.com/techagentng/blogx/server/response"
)

// handleIndex serves the home listing: all posts, newest first. The route
// sits behind the page cache.
func (s *Server) handleIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, apiErr := s.PostService.GetHomePage(pageNumber(c))
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "home", http.StatusOK, page, nil)
	}
}

func (s *Server) handleGroupPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, apiErr := s.PostService.GetGroupPage(c.Param("slug"), pageNumber(c))
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "group posts", http.StatusOK, page, nil)
	}
}

func (s *Server) handleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, apiErr := s.PostService.GetProfilePage(c.Param("username"), pageNumber(c))
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "profile", http.StatusOK, page, nil)
	}
}

func (s *Server) handlePostDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			respondError(c, apiError.New("post not found", http.StatusNotFound))
			return
		}
		page, apiErr := s.PostService.GetPostDetail(id)
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "post detail", http.StatusOK, page, nil)
	}
}

func (s *Server) handleCreatePostForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		form, apiErr := s.PostService.GetPostForm()
		if apiErr != nil {
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "create post", http.StatusOK, form, nil)
	}
}

func (s *Server) handleCreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		request, ok := s.bindPostForm(c)
		if !ok {
			return
		}

		imagePath, ok := s.savePostImage(c)
		if !ok {
			return
		}

		if _, apiErr := s.PostService.CreatePost(user.ID, request, imagePath); apiErr != nil {
			s.respondPostFormError(c, apiErr)
			return
		}
		c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
	}
}

func (s *Server) handleEditPostForm() gin.HandlerFunc {
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

		form, apiErr := s.PostService.GetEditForm(user.ID, id)
		if apiErr != nil {
			if apiErr == apiError.ErrNotPostAuthor {
				c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", id))
				return
			}
			respondError(c, apiErr)
			return
		}
		response.JSON(c, "edit post", http.StatusOK, form, nil)
	}
}

func (s *Server) handleEditPost() gin.HandlerFunc {
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

		// existence and ownership come before form validation: non-authors
		// are redirected to the detail view without modification
		if _, apiErr := s.PostService.GetEditForm(user.ID, id); apiErr != nil {
			if apiErr == apiError.ErrNotPostAuthor {
				c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", id))
				return
			}
			respondError(c, apiErr)
			return
		}

		request, ok := s.bindPostForm(c)
		if !ok {
			return
		}

		imagePath, ok := s.savePostImage(c)
		if !ok {
			return
		}

		if _, apiErr := s.PostService.UpdatePost(user.ID, id, request, imagePath); apiErr != nil {
			s.respondPostFormError(c, apiErr)
			return
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", id))
	}
}

// bindPostForm binds and normalizes the post form, redisplaying it with
// field errors when validation fails.
func (s *Server) bindPostForm(c *gin.Context) (*models.PostRequest, bool) {
	var request models.PostRequest
	err := c.ShouldBind(&request)
	if err == nil {
		if nErr := models.NormalizeWhitespace(&request); nErr != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, nErr)
			return nil, false
		}
		if strings.TrimSpace(request.Text) == "" {
			err = fmt.Errorf("text is a required field")
		}
	}
	if err != nil {
		form, formErr := s.PostService.GetPostForm()
		if formErr != nil {
			respondError(c, formErr)
			return nil, false
		}
		response.JSON(c, "validation failed", http.StatusBadRequest,
			gin.H{"form": form, "errors": models.TranslateError(err)}, nil)
		return nil, false
	}
	return &request, true
}

// savePostImage stores the optional image attachment. A missing file is fine;
// an invalid one fails the submission.
func (s *Server) savePostImage(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", true
	}
	if err := validateImageFile(fileHeader); err != nil {
		response.JSON(c, "validation failed", http.StatusBadRequest,
			gin.H{"errors": []string{err.Error()}}, nil)
		return "", false
	}
	path, err := s.MediaService.SavePostImage(fileHeader)
	if err != nil {
		respondError(c, apiError.ErrInternalServerError)
		return "", false
	}
	return path, true
}

// respondPostFormError redisplays the form for client errors and falls back
// to the plain error response otherwise.
func (s *Server) respondPostFormError(c *gin.Context, apiErr *apiError.Error) {
	if apiErr.Status != http.StatusBadRequest {
		respondError(c, apiErr)
		return
	}
	form, formErr := s.PostService.GetPostForm()
	if formErr != nil {
		respondError(c, formErr)
		return
	}
	response.JSON(c, "validation failed", http.StatusBadRequest,
		gin.H{"form": form, "errors": []string{apiErr.Message}}, nil)
}
