package profile

import "time"

type Profile struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserIDText string    `gorm:"column:user_id_text;not null;uniqueIndex" json:"user_id"`
	PinHash    string    `gorm:"column:pin_hash;not null" json:"-"`
	Language   *string   `gorm:"type:text" json:"language,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
