package models

import (
	"time"
)

const DateLayout = "2006-01-02"

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type RegisterReq struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileReq struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url,max=500"`
}

type PasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UserResp struct {
	ID         uint64     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	AvatarURL  *string    `json:"avatarUrl"`
	IsActive   bool       `json:"isActive"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type AuthResp struct {
	User  UserResp `json:"user"`
	Token string   `json:"token"`
}

type ContactListReq struct {
	Page      int    `query:"page" validate:"omitempty,min=1,max=1000000"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Search    string `query:"search" validate:"max=255"`
	Tag       string `query:"tag" validate:"max=100"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

type ContactReq struct {
	Name       *string  `json:"name" validate:"required,min=1,max=255"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Phone      *string  `json:"phone" validate:"omitempty,max=50"`
	Company    *string  `json:"company" validate:"omitempty,max=255"`
	JobTitle   *string  `json:"jobTitle" validate:"omitempty,max=255"`
	AvatarURL  *string  `json:"avatarUrl" validate:"omitempty,url,max=500"`
	Notes      *string  `json:"notes" validate:"omitempty,max=5000"`
	Website    *string  `json:"website" validate:"omitempty,url"`
	Address    *string  `json:"address" validate:"omitempty,max=1000"`
	Birthday   *string  `json:"birthday" validate:"omitempty,isodate"`
	IsFavorite *bool    `json:"isFavorite"`
	Tags       []string `json:"tags" validate:"omitempty,dive,required,max=100"`
}

// ContactUpdateReq differs from ContactReq in that every field is optional and
// a missing tags key (nil) is distinguishable from an empty list.
type ContactUpdateReq struct {
	Name       *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Phone      *string   `json:"phone" validate:"omitempty,max=50"`
	Company    *string   `json:"company" validate:"omitempty,max=255"`
	JobTitle   *string   `json:"jobTitle" validate:"omitempty,max=255"`
	AvatarURL  *string   `json:"avatarUrl" validate:"omitempty,url,max=500"`
	Notes      *string   `json:"notes" validate:"omitempty,max=5000"`
	Website    *string   `json:"website" validate:"omitempty,url"`
	Address    *string   `json:"address" validate:"omitempty,max=1000"`
	Birthday   *string   `json:"birthday" validate:"omitempty,isodate"`
	IsFavorite *bool     `json:"isFavorite"`
	Tags       *[]string `json:"tags" validate:"omitempty,dive,required,max=100"`
}

type ContactTagResp struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type ContactResp struct {
	ID         uint64           `json:"id"`
	Name       string           `json:"name"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Company    *string          `json:"company"`
	JobTitle   *string          `json:"job_title"`
	AvatarURL  *string          `json:"avatar_url"`
	Notes      *string          `json:"notes"`
	Website    *string          `json:"website"`
	Address    *string          `json:"address"`
	Birthday   *string          `json:"birthday"`
	IsFavorite bool             `json:"is_favorite"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Tags       []ContactTagResp `json:"tags"`
}

type ContactEnvelope struct {
	Contact ContactResp `json:"contact"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type ContactListResp struct {
	Contacts   []ContactResp `json:"contacts"`
	Pagination Pagination    `json:"pagination"`
}

type StatsResp struct {
	Stats   ContactStats   `json:"stats"`
	TopTags []TagCountResp `json:"topTags"`
}

type ContactStats struct {
	TotalContacts    int64 `json:"total_contacts"`
	FavoriteContacts int64 `json:"favorite_contacts"`
	RecentContacts   int64 `json:"recent_contacts"`
	ThisWeekContacts int64 `json:"this_week_contacts"`
}

type TagCountResp struct {
	Name         string `json:"name"`
	ContactCount int64  `json:"contact_count"`
}

type TagReq struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Color       *string `json:"color" validate:"omitempty,len=7,hexcolor"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type TagUpdateReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color       *string `json:"color" validate:"omitempty,len=7,hexcolor"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type TagResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}
