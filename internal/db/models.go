package db

import (
	"time"
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Email      string `gorm:"unique;not null"`
		Password   string `gorm:"not null"`
		FirstName  string `gorm:"not null"`
		LastName   string `gorm:"not null"`
		AvatarURL  *string
		IsActive   bool `gorm:"not null;default:true"`
		IsVerified bool `gorm:"not null;default:false"`
		LastLogin  *time.Time
	}

	Contact struct {
		GormForkedModel
		UserID     uint64 `gorm:"not null;index"`
		User       User   `gorm:"constraint:OnDelete:CASCADE"`
		Name       string `gorm:"not null"`
		Email      *string
		Phone      *string
		Company    *string
		JobTitle   *string
		AvatarURL  *string
		Notes      *string
		Website    *string
		Address    *string
		Birthday   *time.Time
		IsFavorite bool `gorm:"not null;default:false"`
		// Tags is hydrated from contact_tags, never persisted through the association.
		Tags []Tag `gorm:"-"`
	}

	// Tag names are global; CreatedBy is set only for tags added through the
	// tag dictionary and is cleared when that user goes away.
	Tag struct {
		GormForkedModel
		Name        string `gorm:"not null;uniqueIndex:uidx_tags_name"`
		Color       *string
		Description *string
		CreatedBy   *uint64 `gorm:"index"`
		Creator     *User   `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	}

	ContactTag struct {
		ContactID uint64  `gorm:"primaryKey;autoIncrement:false"`
		Contact   Contact `gorm:"constraint:OnDelete:CASCADE"`
		TagID     uint64  `gorm:"primaryKey;autoIncrement:false;index"`
		Tag       Tag     `gorm:"constraint:OnDelete:CASCADE"`
	}
)

// migrated in dependency order
func allModels() []interface{} {
	return []interface{}{&User{}, &Contact{}, &Tag{}, &ContactTag{}}
}
