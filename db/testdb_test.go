package db

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/techagentng/blogx/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *GormDB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := Migrate(gormDB); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return &GormDB{DB: gormDB}
}

func createTestUser(t *testing.T, gdb *GormDB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "x",
	}
	if err := gdb.DB.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestGroup(t *testing.T, gdb *GormDB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: slug, Slug: slug, Description: "about " + slug}
	if err := gdb.DB.Create(group).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func createTestPost(t *testing.T, gdb *GormDB, author *models.User, text string, groupID *uint, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:     text,
		PubDate:  pubDate,
		GroupID:  groupID,
		AuthorID: author.ID,
	}
	if err := gdb.DB.Omit("Author", "Group").Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return post
}
