package models

import "time"

// UserBook records that a user took a book. The same pair may appear more
// than once.
type UserBook struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"size:36;not null;index"`
	BookID    string    `json:"bookId" gorm:"size:36;not null;index"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Book *Book `json:"-" gorm:"foreignKey:BookID;references:ID;constraint:OnDelete:CASCADE"`
}

// CheckoutRequest is the request body for a user taking a book.
type CheckoutRequest struct {
	UserID string `json:"userId" example:"94c7e23a-0474-4d7c-979c-d647e70df3b5"`
	BookID string `json:"bookId" example:"0b6d3f0e-55d1-4d0c-9a65-1f1b0e0a8c11"`
}
