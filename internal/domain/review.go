package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	ListingID  int64     `json:"listing_id" gorm:"index"`
	ReviewerID int64     `json:"reviewer_id" gorm:"index"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE"`
}
