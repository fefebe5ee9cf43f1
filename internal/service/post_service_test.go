package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"socialhub/internal/media"
	"socialhub/internal/models"
	"socialhub/internal/repository"
)

func newTestPostService() (*postService, *MockPostRepository, *MockUserRepository, *MockUploader) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	uploader := new(MockUploader)

	svc := NewPostService(postRepo, userRepo, uploader, zap.NewNop()).(*postService)
	return svc, postRepo, userRepo, uploader
}

func testAuthor() *models.User {
	return &models.User{
		UserID:      "user-1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Location:    "London",
		PicturePath: "http://media/avatars/ada.png",
	}
}

func classifiedAs(folder string, resource media.ResourceType) interface{} {
	return mock.MatchedBy(func(c media.Classification) bool {
		return c.Folder == folder && c.ResourceType == resource
	})
}

type countingStore struct {
	puts int
}

func (s *countingStore) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string, _ map[string]string) (string, error) {
	s.puts++
	return "http://media/" + key, nil
}

func (s *countingStore) Delete(context.Context, string) error { return nil }

func TestCreatePost_TextOnly(t *testing.T) {
	svc, postRepo, userRepo, uploader := newTestPostService()
	ctx := context.Background()

	userRepo.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)
	postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
		return p.Description == "Hello world" &&
			p.UserID == "user-1" &&
			p.FirstName == "Ada" &&
			p.UserPicturePath == "http://media/avatars/ada.png" &&
			!p.HasMedia()
	})).Return(nil)

	feed := []models.Post{{PostID: "p2", Description: "Hello world"}, {PostID: "p1"}}
	postRepo.On("GetAll", ctx).Return(feed, nil)

	posts, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "user-1", Description: "Hello world"})

	require.NoError(t, err)
	assert.Equal(t, feed, posts)
	uploader.AssertNumberOfCalls(t, "Upload", 0)
	postRepo.AssertExpectations(t)
}

func TestCreatePost_WithAttachments(t *testing.T) {
	svc, postRepo, userRepo, uploader := newTestPostService()
	ctx := context.Background()

	picture := &media.File{Name: "trip.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("jpg")}
	audio := &media.File{Name: "song.mp3", ContentType: "audio/mpeg", Size: 3, Body: strings.NewReader("mp3")}

	userRepo.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)
	uploader.On("Upload", ctx, classifiedAs(media.FolderPostImages, media.ResourceImage), *picture).
		Return(media.Asset{URL: "http://media/posts_images/a.jpg"}, nil)
	uploader.On("Upload", ctx, classifiedAs(media.FolderPostAudios, media.ResourceRaw), *audio).
		Return(media.Asset{URL: "http://media/posts_audios/b.mp3"}, nil)
	postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
		return p.PicturePath != nil && *p.PicturePath == "http://media/posts_images/a.jpg" &&
			p.AudioPath != nil && *p.AudioPath == "http://media/posts_audios/b.mp3" &&
			p.VideoPath == nil
	})).Return(nil)
	postRepo.On("GetAll", ctx).Return([]models.Post{}, nil)

	_, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID:    "user-1",
		Description: "My trip",
		Picture:     picture,
		Audio:       audio,
	})

	require.NoError(t, err)
	uploader.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestCreatePost_Errors(t *testing.T) {
	ctx := context.Background()
	video := &media.File{Name: "clip.mp4", ContentType: "video/mp4", Size: 4, Body: strings.NewReader("mp4!")}

	tests := []struct {
		name      string
		input     CreatePostInput
		mockSetup func(*MockPostRepository, *MockUserRepository, *MockUploader)
		wantErr   error
	}{
		{
			name:      "Empty post",
			input:     CreatePostInput{AuthorID: "user-1", Description: "   "},
			mockSetup: func(*MockPostRepository, *MockUserRepository, *MockUploader) {},
			wantErr:   ErrValidation,
		},
		{
			name:  "Unknown author",
			input: CreatePostInput{AuthorID: "ghost", Description: "hi"},
			mockSetup: func(_ *MockPostRepository, u *MockUserRepository, _ *MockUploader) {
				u.On("GetUserByID", ctx, "ghost").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrAuthentication,
		},
		{
			name:  "Upload failure",
			input: CreatePostInput{AuthorID: "user-1", Video: video},
			mockSetup: func(_ *MockPostRepository, u *MockUserRepository, up *MockUploader) {
				u.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)
				up.On("Upload", ctx, classifiedAs(media.FolderPostVideos, media.ResourceVideo), *video).
					Return(media.Asset{}, errors.New("bucket unavailable"))
			},
			wantErr: ErrUpload,
		},
		{
			name:  "Unsupported format",
			input: CreatePostInput{AuthorID: "user-1", Video: video},
			mockSetup: func(_ *MockPostRepository, u *MockUserRepository, up *MockUploader) {
				u.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)
				up.On("Upload", ctx, classifiedAs(media.FolderPostVideos, media.ResourceVideo), *video).
					Return(media.Asset{}, fmt.Errorf("%w: %q", media.ErrUnsupportedFormat, ".mov"))
			},
			wantErr: ErrValidation,
		},
		{
			name:  "Persistence failure",
			input: CreatePostInput{AuthorID: "user-1", Video: video},
			mockSetup: func(p *MockPostRepository, u *MockUserRepository, up *MockUploader) {
				u.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)
				up.On("Upload", ctx, classifiedAs(media.FolderPostVideos, media.ResourceVideo), *video).
					Return(media.Asset{URL: "http://media/posts_videos/c.mp4"}, nil)
				p.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))
			},
			wantErr: ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, postRepo, userRepo, uploader := newTestPostService()
			tt.mockSetup(postRepo, userRepo, uploader)

			posts, err := svc.CreatePost(ctx, tt.input)

			assert.Nil(t, posts)
			assert.ErrorIs(t, err, tt.wantErr)
			postRepo.AssertNotCalled(t, "GetAll", ctx)
		})
	}
}

func TestLikePost(t *testing.T) {
	svc, postRepo, _, _ := newTestPostService()
	ctx := context.Background()

	liked := &models.Post{PostID: "p1", Likes: []string{"user-2"}}
	postRepo.On("ToggleLike", ctx, "p1", "user-2").Return(liked, nil)
	postRepo.On("ToggleLike", ctx, "missing", "user-2").Return(nil, repository.ErrNotFound)

	post, err := svc.LikePost(ctx, "p1", "user-2")
	require.NoError(t, err)
	assert.True(t, post.LikedBy("user-2"))

	_, err = svc.LikePost(ctx, "missing", "user-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	picture := "http://media/posts_images/a.jpg"

	t.Run("Author deletes own post", func(t *testing.T) {
		svc, postRepo, _, uploader := newTestPostService()
		postRepo.On("GetByID", ctx, "p1").Return(&models.Post{PostID: "p1", UserID: "user-1", PicturePath: &picture}, nil)
		postRepo.On("Delete", ctx, "p1").Return(nil)
		uploader.On("Remove", ctx, picture).Return(errors.New("gone already"))

		err := svc.DeletePost(ctx, "p1", "user-1", false)

		require.NoError(t, err)
		uploader.AssertExpectations(t)
	})

	t.Run("Post without media skips the store", func(t *testing.T) {
		svc, postRepo, _, uploader := newTestPostService()
		postRepo.On("GetByID", ctx, "p2").Return(&models.Post{PostID: "p2", UserID: "user-1"}, nil)
		postRepo.On("Delete", ctx, "p2").Return(nil)

		err := svc.DeletePost(ctx, "p2", "user-1", false)

		require.NoError(t, err)
		uploader.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("Other user is forbidden", func(t *testing.T) {
		svc, postRepo, _, _ := newTestPostService()
		postRepo.On("GetByID", ctx, "p1").Return(&models.Post{PostID: "p1", UserID: "user-1"}, nil)

		err := svc.DeletePost(ctx, "p1", "user-2", false)

		assert.ErrorIs(t, err, ErrForbidden)
		postRepo.AssertNotCalled(t, "Delete", ctx, "p1")
	})

	t.Run("Admin deletes any post", func(t *testing.T) {
		svc, postRepo, _, _ := newTestPostService()
		postRepo.On("GetByID", ctx, "p1").Return(&models.Post{PostID: "p1", UserID: "user-1"}, nil)
		postRepo.On("Delete", ctx, "p1").Return(nil)

		err := svc.DeletePost(ctx, "p1", "", true)

		require.NoError(t, err)
		postRepo.AssertExpectations(t)
	})
}

func TestCreatePost_EmptyFileIsValidationError(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{}
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	svc := NewPostService(postRepo, userRepo, media.NewUploader(store, zap.NewNop()), zap.NewNop())

	userRepo.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)

	posts, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: "user-1",
		Picture:  &media.File{Name: "blank.jpg", ContentType: "image/jpeg", Size: 0, Body: strings.NewReader("")},
	})

	assert.Nil(t, posts)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrUpload)
	assert.Equal(t, 0, store.puts)
	postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_KeepsDescriptionVerbatim(t *testing.T) {
	svc, postRepo, userRepo, _ := newTestPostService()
	ctx := context.Background()
	description := "  indented poem\n  line two\n"

	userRepo.On("GetUserByID", ctx, "user-1").Return(testAuthor(), nil)
	postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
		return p.Description == description
	})).Return(nil)
	postRepo.On("GetAll", ctx).Return([]models.Post{}, nil)

	_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "user-1", Description: description})

	require.NoError(t, err)
	postRepo.AssertExpectations(t)
}
