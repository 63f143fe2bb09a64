package main

import (
	"log"

	"github.com/techagentng/blogx/cache"
	"github.com/techagentng/blogx/config"
	"github.com/techagentng/blogx/db"
	"github.com/techagentng/blogx/server"
	"github.com/techagentng/blogx/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	groupRepo := db.NewGroupRepo(gormDB)
	postRepo := db.NewPostRepo(gormDB)
	commentRepo := db.NewCommentRepo(gormDB)
	followRepo := db.NewFollowRepo(gormDB)

	var pageCache cache.PageCache
	if conf.RedisAddr != "" {
		pageCache = cache.NewRedisCache(conf.RedisAddr, conf.RedisPassword)
	} else {
		pageCache = cache.NewMemoryCache()
	}

	var storage services.Storage
	if conf.AwsBucket != "" {
		storage, err = services.NewS3Storage(conf)
		if err != nil {
			log.Fatalf("error creating S3 storage: %v", err)
		}
	} else {
		storage = services.NewDiskStorage(conf.MediaRoot)
	}

	authService := services.NewAuthService(authRepo, conf)
	postService := services.NewPostService(postRepo, groupRepo, commentRepo, authRepo, conf)
	followService := services.NewFollowService(followRepo, postRepo, authRepo, conf)
	mediaService := services.NewMediaService(storage, conf)

	s := &server.Server{
		Config:         conf,
		AuthRepository: authRepo,
		AuthService:    authService,
		PostService:    postService,
		FollowService:  followService,
		MediaService:   mediaService,
		PageCache:      pageCache,
		DB:             *gormDB,
	}

	s.Start()
}
