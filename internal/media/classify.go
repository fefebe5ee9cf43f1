package media

import (
	"path/filepath"
	"slices"
	"strings"
)

type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceRaw   ResourceType = "raw"
)

const (
	FolderPostImages   = "posts_images"
	FolderPostVideos   = "posts_videos"
	FolderPostAudios   = "posts_audios"
	FolderPostRaw      = "posts_raw"
	FolderUserPictures = "user_pictures"
)

var (
	postFormats    = []string{"jpg", "jpeg", "png", "mp4", "mp3"}
	pictureFormats = []string{"jpg", "jpeg", "png", "webp"}
)

// Classification is where an upload lands in the media store and how it is stored.
type Classification struct {
	Folder         string
	ResourceType   ResourceType
	AllowedFormats []string
}

// Classify maps a post attachment MIME type to its destination. Unknown types
// fall through to the raw folder.
func Classify(mimetype string) Classification {
	mt := strings.ToLower(strings.TrimSpace(mimetype))

	switch {
	case strings.HasPrefix(mt, "image/"):
		return Classification{Folder: FolderPostImages, ResourceType: ResourceImage, AllowedFormats: postFormats}
	case strings.HasPrefix(mt, "video/"):
		return Classification{Folder: FolderPostVideos, ResourceType: ResourceVideo, AllowedFormats: postFormats}
	case strings.HasPrefix(mt, "audio/"):
		return Classification{Folder: FolderPostAudios, ResourceType: ResourceRaw, AllowedFormats: postFormats}
	default:
		return Classification{Folder: FolderPostRaw, ResourceType: ResourceRaw, AllowedFormats: postFormats}
	}
}

// ProfilePicture is the destination for avatars uploaded at registration.
func ProfilePicture() Classification {
	return Classification{Folder: FolderUserPictures, ResourceType: ResourceImage, AllowedFormats: pictureFormats}
}

// Allows reports whether the file extension is an accepted format.
// An empty allow-list accepts everything.
func (c Classification) Allows(fileName string) bool {
	if len(c.AllowedFormats) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	return slices.Contains(c.AllowedFormats, ext)
}
