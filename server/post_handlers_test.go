package server

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/techagentng/blogx/models"
)

func TestHomeListing(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser("leo")

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 15; i++ {
		env.createPost(author, fmt.Sprintf("post %d", i), nil, base.Add(time.Duration(i)*time.Minute))
	}

	w := env.get("/", "")
	assertStatus(t, w, http.StatusOK)
	var page models.PostListPage
	decodeData(t, w, &page)
	if len(page.Posts) != 10 {
		t.Fatalf("expected 10 posts on the first page, got %d", len(page.Posts))
	}
	if page.Posts[0].Text != "post 15" {
		t.Fatalf("expected newest post first, got %q", page.Posts[0].Text)
	}
	if page.Page.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.Page.TotalPages)
	}

	w = env.get("/?page=2", "")
	assertStatus(t, w, http.StatusOK)
	decodeData(t, w, &page)
	if len(page.Posts) != 5 {
		t.Fatalf("expected 5 posts on the second page, got %d", len(page.Posts))
	}

	// out-of-range and junk page values resolve to a real page
	w = env.get("/?page=9", "")
	assertStatus(t, w, http.StatusOK)
	decodeData(t, w, &page)
	if page.Page.Number != 2 {
		t.Fatalf("expected clamping to the last page, got %d", page.Page.Number)
	}

	w = env.get("/?page=abc", "")
	assertStatus(t, w, http.StatusOK)
	decodeData(t, w, &page)
	if page.Page.Number != 1 {
		t.Fatalf("expected junk page to resolve to 1, got %d", page.Page.Number)
	}
}

func TestGroupListing(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser("leo")
	group := env.createGroup("cats")

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	env.createPost(author, "newer", &group.ID, base.Add(time.Hour))
	env.createPost(author, "older", &group.ID, base)
	env.createPost(author, "ungrouped", nil, base)

	w := env.get("/group/cats/", "")
	assertStatus(t, w, http.StatusOK)
	var page models.GroupPage
	decodeData(t, w, &page)
	if page.Group.Slug != "cats" {
		t.Fatalf("expected group cats, got %q", page.Group.Slug)
	}
	if len(page.Posts) != 2 {
		t.Fatalf("expected 2 group posts, got %d", len(page.Posts))
	}
	if page.Posts[0].Text != "older" || page.Posts[1].Text != "newer" {
		t.Fatalf("expected oldest-first group order, got %q then %q", page.Posts[0].Text, page.Posts[1].Text)
	}

	w = env.get("/group/missing/", "")
	assertStatus(t, w, http.StatusNotFound)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser("leo")
	other := env.createUser("mia")

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	env.createPost(author, "mine", nil, base)
	env.createPost(author, "mine too", nil, base.Add(time.Minute))
	env.createPost(other, "hers", nil, base)

	w := env.get("/profile/leo/", "")
	assertStatus(t, w, http.StatusOK)
	var page models.ProfilePage
	decodeData(t, w, &page)
	if page.Author.Username != "leo" {
		t.Fatalf("expected author leo, got %q", page.Author.Username)
	}
	if page.PostCount != 2 {
		t.Fatalf("expected post count 2, got %d", page.PostCount)
	}
	if len(page.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(page.Posts))
	}

	w = env.get("/profile/nobody/", "")
	assertStatus(t, w, http.StatusNotFound)
}

func TestPostDetail(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser("leo")
	post := env.createPost(author, "hello", nil, time.Now())
	env.createPost(author, "another", nil, time.Now())

	w := env.get(fmt.Sprintf("/posts/%d/", post.ID), "")
	assertStatus(t, w, http.StatusOK)
	var page models.PostDetailPage
	decodeData(t, w, &page)
	if page.Post.Text != "hello" {
		t.Fatalf("expected post text hello, got %q", page.Post.Text)
	}
	if page.Post.Author.Username != "leo" {
		t.Fatalf("expected author leo, got %q", page.Post.Author.Username)
	}
	if page.AuthorPostCount != 2 {
		t.Fatalf("expected author post count 2, got %d", page.AuthorPostCount)
	}

	w = env.get("/posts/9999/", "")
	assertStatus(t, w, http.StatusNotFound)

	w = env.get("/posts/abc/", "")
	assertStatus(t, w, http.StatusNotFound)
}

func TestCreatePostRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/create/", url.Values{"text": {"drive-by"}}, "")
	assertLoginRedirect(t, w, "/create/")

	var count int64
	if err := env.db.DB.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no posts, got %d", count)
	}

	w = env.get("/create/", "")
	assertLoginRedirect(t, w, "/create/")
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")
	group := env.createGroup("cats")

	form := url.Values{
		"text":  {"Тест"},
		"group": {fmt.Sprintf("%d", group.ID)},
	}
	w := env.postForm("/create/", form, env.authHeader(user))
	assertRedirect(t, w, "/profile/leo/")

	var posts []models.Post
	if err := env.db.DB.Find(&posts).Error; err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected exactly one post, got %d", len(posts))
	}
	if posts[0].Text != "Тест" {
		t.Fatalf("expected text to survive round trip, got %q", posts[0].Text)
	}
	if posts[0].AuthorID != user.ID {
		t.Fatalf("expected author %d, got %d", user.ID, posts[0].AuthorID)
	}
	if posts[0].GroupID == nil || *posts[0].GroupID != group.ID {
		t.Fatal("expected group to be set")
	}
}

func TestCreatePostWithoutGroup(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")

	w := env.postForm("/create/", url.Values{"text": {"no group"}}, env.authHeader(user))
	assertRedirect(t, w, "/profile/leo/")

	var post models.Post
	if err := env.db.DB.First(&post).Error; err != nil {
		t.Fatalf("find post: %v", err)
	}
	if post.GroupID != nil {
		t.Fatalf("expected no group, got %d", *post.GroupID)
	}
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")

	tests := []struct {
		name string
		form url.Values
	}{
		{"empty form", url.Values{}},
		{"blank text", url.Values{"text": {"   "}}},
		{"unknown group", url.Values{"text": {"ok"}, "group": {"999"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.postForm("/create/", tc.form, env.authHeader(user))
			assertStatus(t, w, http.StatusBadRequest)
		})
	}

	var count int64
	if err := env.db.DB.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no posts after rejected submissions, got %d", count)
	}
}

func TestCreatePostWithImage(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", "with picture"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := mw.CreateFormFile("image", "pic.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if err := png.Encode(part, newTestImage()); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	mw.Close()

	w := env.do(http.MethodPost, "/create/", &buf, mw.FormDataContentType(), env.authHeader(user))
	assertRedirect(t, w, "/profile/leo/")

	var post models.Post
	if err := env.db.DB.First(&post).Error; err != nil {
		t.Fatalf("find post: %v", err)
	}
	if !strings.HasPrefix(post.Image, "/media/posts/") {
		t.Fatalf("expected media path, got %q", post.Image)
	}
	onDisk := filepath.Join(env.server.Config.MediaRoot, "posts", "pic.png")
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("expected stored image at %s: %v", onDisk, err)
	}
	thumb := filepath.Join(env.server.Config.MediaRoot, "posts", "thumbs", "pic.png")
	if _, err := os.Stat(thumb); err != nil {
		t.Fatalf("expected thumbnail at %s: %v", thumb, err)
	}
}

func TestCreatePostRejectsBadImageType(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", "with attachment"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := mw.CreateFormFile("image", "notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("not an image")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()

	w := env.do(http.MethodPost, "/create/", &buf, mw.FormDataContentType(), env.authHeader(user))
	assertStatus(t, w, http.StatusBadRequest)
}

func TestEditPostByAuthor(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")
	group := env.createGroup("cats")
	post := env.createPost(user, "original", &group.ID, time.Now())

	w := env.get(fmt.Sprintf("/posts/%d/edit/", post.ID), env.authHeader(user))
	assertStatus(t, w, http.StatusOK)
	var form models.PostFormPage
	decodeData(t, w, &form)
	if !form.IsEdit || form.Form.Text != "original" {
		t.Fatalf("expected prefilled edit form, got %+v", form)
	}

	// omitting the group clears it
	w = env.postForm(fmt.Sprintf("/posts/%d/edit/", post.ID),
		url.Values{"text": {"edited"}}, env.authHeader(user))
	assertRedirect(t, w, fmt.Sprintf("/posts/%d/", post.ID))

	var updated models.Post
	if err := env.db.DB.First(&updated, post.ID).Error; err != nil {
		t.Fatalf("find post: %v", err)
	}
	if updated.Text != "edited" {
		t.Fatalf("expected edited text, got %q", updated.Text)
	}
	if updated.GroupID != nil {
		t.Fatalf("expected group cleared, got %d", *updated.GroupID)
	}
}

func TestEditPostByNonAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser("leo")
	intruder := env.createUser("mia")
	post := env.createPost(author, "original", nil, time.Now())
	detail := fmt.Sprintf("/posts/%d/", post.ID)

	w := env.get(detail+"edit/", env.authHeader(intruder))
	assertRedirect(t, w, detail)

	w = env.postForm(detail+"edit/", url.Values{"text": {"hijacked"}}, env.authHeader(intruder))
	assertRedirect(t, w, detail)

	var unchanged models.Post
	if err := env.db.DB.First(&unchanged, post.ID).Error; err != nil {
		t.Fatalf("find post: %v", err)
	}
	if unchanged.Text != "original" {
		t.Fatalf("expected text untouched, got %q", unchanged.Text)
	}
}

func TestEditUnknownPost(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("leo")

	w := env.postForm("/posts/9999/edit/", url.Values{"text": {"x"}}, env.authHeader(user))
	assertStatus(t, w, http.StatusNotFound)
}

func newTestImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 6), B: 120, A: 255})
		}
	}
	return img
}
