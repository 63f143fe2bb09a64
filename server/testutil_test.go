package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/blogx/cache"
	"github.com/techagentng/blogx/config"
	"github.com/techagentng/blogx/db"
	"github.com/techagentng/blogx/models"
	"github.com/techagentng/blogx/services"
	jwtPackage "github.com/techagentng/blogx/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "long-enough-password"

type testEnv struct {
	t      *testing.T
	server *Server
	router *gin.Engine
	db     *db.GormDB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	gdb := &db.GormDB{DB: gormDB}

	conf := &config.Config{
		JWTSecret:           "test-secret",
		PageCacheTTLSeconds: 20,
		MediaRoot:           t.TempDir(),
	}

	authRepo := db.NewAuthRepo(gdb)
	groupRepo := db.NewGroupRepo(gdb)
	postRepo := db.NewPostRepo(gdb)
	commentRepo := db.NewCommentRepo(gdb)
	followRepo := db.NewFollowRepo(gdb)

	s := &Server{
		Config:         conf,
		AuthRepository: authRepo,
		AuthService:    services.NewAuthService(authRepo, conf),
		PostService:    services.NewPostService(postRepo, groupRepo, commentRepo, authRepo, conf),
		FollowService:  services.NewFollowService(followRepo, postRepo, authRepo, conf),
		MediaService:   services.NewMediaService(services.NewDiskStorage(conf.MediaRoot), conf),
		PageCache:      cache.NewMemoryCache(),
		DB:             *gdb,
	}
	return &testEnv{t: t, server: s, router: s.setupRouter(), db: gdb}
}

func (e *testEnv) createUser(username string) *models.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		e.t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: string(hash),
	}
	if err := e.db.DB.Create(user).Error; err != nil {
		e.t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createAdmin(username string) *models.User {
	e.t.Helper()
	user := e.createUser(username)
	if err := e.db.DB.Model(user).Update("is_admin", true).Error; err != nil {
		e.t.Fatalf("promote user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createGroup(slug string) *models.Group {
	e.t.Helper()
	group := &models.Group{Title: slug, Slug: slug, Description: "about " + slug}
	if err := e.db.DB.Create(group).Error; err != nil {
		e.t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func (e *testEnv) createPost(author *models.User, text string, groupID *uint, pubDate time.Time) *models.Post {
	e.t.Helper()
	post := &models.Post{
		Text:     text,
		PubDate:  pubDate,
		GroupID:  groupID,
		AuthorID: author.ID,
	}
	if err := e.db.DB.Omit("Author", "Group").Create(post).Error; err != nil {
		e.t.Fatalf("create post %q: %v", text, err)
	}
	return post
}

// authHeader mints a token for the user the way login would.
func (e *testEnv) authHeader(user *models.User) string {
	e.t.Helper()
	token, err := jwtPackage.GenerateToken(user.ID, e.server.Config.JWTSecret)
	if err != nil {
		e.t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func (e *testEnv) get(target, auth string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(http.MethodGet, target, nil, "", auth)
}

func (e *testEnv) postForm(target string, form url.Values, auth string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(http.MethodPost, target, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", auth)
}

func (e *testEnv) postJSON(target string, payload interface{}, auth string) *httptest.ResponseRecorder {
	e.t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		e.t.Fatalf("marshal payload: %v", err)
	}
	return e.do(http.MethodPost, target, strings.NewReader(string(body)), "application/json", auth)
}

func (e *testEnv) do(method, target string, body io.Reader, contentType, auth string) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of the response envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, w.Body.String())
	}
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d (body %s)", want, w.Code, w.Body.String())
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assertStatus(t, w, http.StatusFound)
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

// assertLoginRedirect checks the redirect to the login page with the original
// destination preserved.
func assertLoginRedirect(t *testing.T, w *httptest.ResponseRecorder, next string) {
	t.Helper()
	assertStatus(t, w, http.StatusFound)
	location, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect location: %v", err)
	}
	if location.Path != "/auth/login/" {
		t.Fatalf("expected redirect to login, got %q", location.Path)
	}
	if got := location.Query().Get("next"); got != next {
		t.Fatalf("expected next=%q, got %q", next, got)
	}
}
