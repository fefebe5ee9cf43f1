package models

import (
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID                 string         `json:"id" db:"user_id"`
	FirstName              string         `json:"firstName" db:"first_name"`
	LastName               string         `json:"lastName" db:"last_name"`
	Email                  string         `json:"email" db:"email"`
	PasswordHash           string         `json:"-" db:"password_hash"`
	PicturePath            string         `json:"picturePath" db:"picture_path"`
	Friends                pq.StringArray `json:"friends" db:"friends"`
	Location               string         `json:"location" db:"location"`
	Occupation             string         `json:"occupation" db:"occupation"`
	Role                   string         `json:"role" db:"role"`
	RefreshToken           string         `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time      `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time      `json:"createdAt" db:"created_at"`
}

// Friend is the public projection of a user shown in friend lists.
type Friend struct {
	UserID      string `json:"id" db:"user_id"`
	FirstName   string `json:"firstName" db:"first_name"`
	LastName    string `json:"lastName" db:"last_name"`
	Occupation  string `json:"occupation" db:"occupation"`
	Location    string `json:"location" db:"location"`
	PicturePath string `json:"picturePath" db:"picture_path"`
}

// Post is never mutated by ingestion; likes, comments and deletion are handled elsewhere.
type Post struct {
	PostID          string         `json:"id" db:"post_id"`
	UserID          string         `json:"userId" db:"user_id"`
	FirstName       string         `json:"firstName" db:"first_name"`
	LastName        string         `json:"lastName" db:"last_name"`
	Location        string         `json:"location" db:"location"`
	Description     string         `json:"description" db:"description"`
	UserPicturePath string         `json:"userPicturePath" db:"user_picture_path"`
	PicturePath     *string        `json:"picturePath,omitempty" db:"picture_path"`
	VideoPath       *string        `json:"videoPath,omitempty" db:"video_path"`
	AudioPath       *string        `json:"audioPath,omitempty" db:"audio_path"`
	Likes           pq.StringArray `json:"likes" db:"likes"`
	Comments        pq.StringArray `json:"comments" db:"comments"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
}

// HasMedia reports whether any media reference is attached.
func (p *Post) HasMedia() bool {
	return p.PicturePath != nil || p.VideoPath != nil || p.AudioPath != nil
}

// LikedBy reports whether userID is among the post likes.
func (p *Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

type Message struct {
	MessageID  string    `json:"id" db:"message_id"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	ReceiverID string    `json:"receiverId" db:"receiver_id"`
	Text       string    `json:"text" db:"text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Stats struct {
	Users    int `json:"users" db:"users"`
	Posts    int `json:"posts" db:"posts"`
	Messages int `json:"messages" db:"messages"`
	Tables   int `json:"tables" db:"tables"`
}
