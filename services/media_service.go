package services

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/blogx/config"
)

// Storage is where uploaded media bytes end up (local media root or S3).
type Storage interface {
	Exists(name string) bool
	Save(name string, content []byte, contentType string) (string, error)
}

// MediaService stores post images, keeping the original filename where
// possible and a uuid-suffixed variant on collision, and generates a
// thumbnail alongside the original.
type MediaService interface {
	SavePostImage(fileHeader *multipart.FileHeader) (string, error)
}

type mediaService struct {
	Config  *config.Config
	storage Storage
}

func NewMediaService(storage Storage, conf *config.Config) MediaService {
	return &mediaService{
		Config:  conf,
		storage: storage,
	}
}

const thumbnailWidth = 300

func (m *mediaService) SavePostImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "could not open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "could not read uploaded file")
	}

	name := m.dedupName(filepath.Base(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	path, err := m.storage.Save("posts/"+name, content, contentType)
	if err != nil {
		return "", errors.Wrap(err, "could not store uploaded file")
	}

	m.saveThumbnail(name, content, contentType)
	return path, nil
}

// dedupName keeps the original filename unless it is already taken.
func (m *mediaService) dedupName(name string) string {
	if !m.storage.Exists("posts/" + name) {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + uuid.New().String()[:8] + ext
}

// saveThumbnail is best effort: an undecodable image keeps its original only.
func (m *mediaService) saveThumbnail(name string, content []byte, contentType string) {
	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		log.Printf("skipping thumbnail for %s: %v", name, err)
		return
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		log.Printf("could not encode thumbnail for %s: %v", name, err)
		return
	}
	if _, err := m.storage.Save("posts/thumbs/"+name, buf.Bytes(), contentType); err != nil {
		log.Printf("could not store thumbnail for %s: %v", name, err)
	}
}
