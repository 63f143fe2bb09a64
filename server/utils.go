package server

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/blogx/errors"
	"github.com/techagentng/blogx/server/response"
)

const authCookieName = "auth_token"

const maxImageSize = 8 << 20

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}

// pageNumber reads the optional page query parameter; anything unusable
// resolves to page 1.
func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseIDParam reads the numeric id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, apiErr *apiError.Error) {
	response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func validateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxImageSize {
		return fmt.Errorf("image exceeds the %dMB limit", maxImageSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("unsupported image type %q", ext)
	}
	return nil
}
