package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		mimetype     string
		folder       string
		resourceType ResourceType
	}{
		{"image/jpeg", FolderPostImages, ResourceImage},
		{"image/png", FolderPostImages, ResourceImage},
		{"IMAGE/PNG", FolderPostImages, ResourceImage},
		{"video/mp4", FolderPostVideos, ResourceVideo},
		{"audio/mpeg", FolderPostAudios, ResourceRaw},
		{"application/pdf", FolderPostRaw, ResourceRaw},
		{"", FolderPostRaw, ResourceRaw},
		{"imagejpeg", FolderPostRaw, ResourceRaw},
	}

	for _, tt := range tests {
		t.Run(tt.mimetype, func(t *testing.T) {
			c := Classify(tt.mimetype)
			assert.Equal(t, tt.folder, c.Folder)
			assert.Equal(t, tt.resourceType, c.ResourceType)
		})
	}
}

func TestClassification_Allows(t *testing.T) {
	post := Classify("image/jpeg")
	assert.True(t, post.Allows("trip.jpg"))
	assert.True(t, post.Allows("TRIP.JPEG"))
	assert.True(t, post.Allows("clip.mp4"))
	assert.True(t, post.Allows("song.mp3"))
	assert.False(t, post.Allows("notes.txt"))
	assert.False(t, post.Allows("noext"))

	picture := ProfilePicture()
	assert.Equal(t, FolderUserPictures, picture.Folder)
	assert.Equal(t, ResourceImage, picture.ResourceType)
	assert.True(t, picture.Allows("me.webp"))
	assert.False(t, picture.Allows("me.mp4"))

	assert.True(t, Classification{}.Allows("anything.bin"))
}
