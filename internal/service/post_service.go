package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"socialhub/internal/media"
	"socialhub/internal/models"
	"socialhub/internal/repository"
)

// MediaUploader forwards attachments to the hosted media store.
type MediaUploader interface {
	Upload(ctx context.Context, c media.Classification, f media.File) (media.Asset, error)
	Remove(ctx context.Context, ref string) error
}

// CreatePostInput is one submission from the composer. Each attachment is optional.
type CreatePostInput struct {
	AuthorID    string
	Description string
	Picture     *media.File
	Video       *media.File
	Audio       *media.File
}

type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) ([]models.Post, error)
	GetFeed(ctx context.Context) ([]models.Post, error)
	GetUserPosts(ctx context.Context, userID string) ([]models.Post, error)
	LikePost(ctx context.Context, postID, userID string) (*models.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string, asAdmin bool) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	uploader MediaUploader
	log      *zap.Logger
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, uploader MediaUploader, log *zap.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		uploader: uploader,
		log:      log,
	}
}

// CreatePost uploads the attachments, persists the post and returns the whole
// collection. A persistence failure leaves already uploaded files in the store.
func (p *postService) CreatePost(ctx context.Context, in CreatePostInput) ([]models.Post, error) {
	if strings.TrimSpace(in.Description) == "" && in.Picture == nil && in.Video == nil && in.Audio == nil {
		return nil, categorize(ErrValidation, errors.New("post has neither text nor media"))
	}

	author, err := p.userRepo.GetUserByID(ctx, in.AuthorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, categorize(ErrAuthentication, err)
		}
		return nil, categorize(ErrPersistence, err)
	}

	post := &models.Post{
		UserID:          author.UserID,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		Location:        author.Location,
		UserPicturePath: author.PicturePath,
		Description:     in.Description,
	}

	var uploaded []string
	attachments := []struct {
		file *media.File
		dst  **string
	}{
		{in.Picture, &post.PicturePath},
		{in.Video, &post.VideoPath},
		{in.Audio, &post.AudioPath},
	}

	for _, a := range attachments {
		if a.file == nil {
			continue
		}

		asset, err := p.uploader.Upload(ctx, media.Classify(a.file.ContentType), *a.file)
		if err != nil {
			if errors.Is(err, media.ErrEmptyFile) || errors.Is(err, media.ErrUnsupportedFormat) {
				return nil, categorize(ErrValidation, err)
			}
			return nil, categorize(ErrUpload, err)
		}

		url := asset.URL
		*a.dst = &url
		uploaded = append(uploaded, url)
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		p.log.Warn("post not persisted, uploaded media left in store",
			zap.String("user_id", post.UserID),
			zap.Strings("media", uploaded),
			zap.Error(err))
		return nil, categorize(ErrPersistence, err)
	}

	p.log.Info("post created",
		zap.String("post_id", post.PostID),
		zap.String("user_id", post.UserID),
		zap.Int("media", len(uploaded)))

	posts, err := p.postRepo.GetAll(ctx)
	if err != nil {
		return nil, categorize(ErrPersistence, err)
	}

	return posts, nil
}

func (p *postService) GetFeed(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.GetAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

func (p *postService) GetUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := p.postRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

func (p *postService) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := p.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, storeError(err)
	}

	p.log.Debug("post like toggled",
		zap.String("post_id", postID),
		zap.String("user_id", userID),
		zap.Bool("liked", post.LikedBy(userID)),
		zap.Int("likes", len(post.Likes)))

	return post, nil
}

// DeletePost removes a post. Only its author may do so unless asAdmin is set.
// Media objects are removed best effort after the row is gone.
func (p *postService) DeletePost(ctx context.Context, postID, requesterID string, asAdmin bool) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return storeError(err)
	}

	if !asAdmin && post.UserID != requesterID {
		return categorize(ErrForbidden, fmt.Errorf("post %s belongs to another user", postID))
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return storeError(err)
	}

	if !post.HasMedia() {
		return nil
	}

	for _, ref := range []*string{post.PicturePath, post.VideoPath, post.AudioPath} {
		if ref == nil {
			continue
		}
		if err := p.uploader.Remove(ctx, *ref); err != nil {
			p.log.Warn("media not removed from store", zap.String("ref", *ref), zap.Error(err))
		}
	}

	return nil
}
