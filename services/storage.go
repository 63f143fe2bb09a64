package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	appconfig "github.com/techagentng/blogx/config"
)

// diskStorage writes media under the configured media root; files are served
// back from the /media/ route.
type diskStorage struct {
	root string
}

func NewDiskStorage(root string) Storage {
	return &diskStorage{root: root}
}

func (d *diskStorage) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(name)))
	return err == nil
}

func (d *diskStorage) Save(name string, content []byte, contentType string) (string, error) {
	path := filepath.Join(d.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "could not create media directory")
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.Wrap(err, "could not write media file")
	}
	return "/media/" + name, nil
}

// s3Storage stores media in the configured bucket.
type s3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Storage(conf *appconfig.Config) (Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(conf.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not load AWS config")
	}
	return &s3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: conf.AwsBucket,
		region: conf.AwsRegion,
	}, nil
}

func (s *s3Storage) Exists(name string) bool {
	_, err := s.client.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	return err == nil
}

func (s *s3Storage) Save(name string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(err, "could not upload to S3")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, strings.TrimPrefix(name, "/")), nil
}
