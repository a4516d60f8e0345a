package userprofile

import "time"

// Profile carries the community-facing details of an account: identity,
// pronouns and where the person is in their hormone therapy journey. It is
// kept apart from the auth user so credentials never travel with it.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Pronouns    string `gorm:"type:varchar(30)" json:"pronouns"`
	Age         *int   `json:"age"`
	Location    string `gorm:"type:varchar(120)" json:"location"`
	Bio         string `gorm:"type:text" json:"bio"`
	THType      string `gorm:"column:th_type;type:varchar(30)" json:"th_type"`
	JourneyTime string `gorm:"type:varchar(30)" json:"journey_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "user_profiles" }
