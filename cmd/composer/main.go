package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"socialhub/internal/composer"
	"socialhub/internal/logger"
)

func main() {
	godotenv.Load()

	baseURL := flag.String("url", envOr("SOCIALHUB_URL", "http://localhost:3001"), "server base URL")
	userID := flag.String("user", os.Getenv("SOCIALHUB_USER_ID"), "author user id")
	token := flag.String("token", os.Getenv("SOCIALHUB_TOKEN"), "bearer access token")
	text := flag.String("text", "", "post text")
	image := flag.String("image", "", "image file to attach")
	video := flag.String("video", "", "video file to attach")
	audio := flag.String("audio", "", "audio file to attach")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Parse()

	zlog, err := logger.New(envOr("LOG_LEVEL", "info"), envOr("APP_ENV", "local"))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	c := composer.New(composer.NewAppContext(*baseURL, *userID, *token, *timeout), nil, zlog)
	c.SetText(*text)

	for kind, path := range map[composer.Kind]string{composer.Image: *image, composer.Video: *video, composer.Audio: *audio} {
		if path == "" {
			continue
		}
		a, err := loadAttachment(path)
		if err != nil {
			zlog.Fatal("read attachment", zap.String("path", path), zap.Error(err))
		}
		c.Attach(kind, a)
	}

	posts, err := c.Submit(context.Background())
	if err != nil {
		zlog.Fatal("submit failed", zap.Error(err))
	}

	zlog.Info("feed refreshed", zap.Int("posts", len(posts)))
}

func loadAttachment(path string) (composer.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return composer.Attachment{}, err
	}

	return composer.Attachment{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
