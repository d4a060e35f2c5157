package models

import "time"

// Member is a registered member profile.
type Member struct {
	UserID                 int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Handle                 string    `gorm:"column:handle;type:varchar(64);not null"`
	HandleLower            string    `gorm:"column:handle_lower;type:varchar(64);uniqueIndex;not null"`
	Email                  string    `gorm:"column:email;type:varchar(255)"`
	FirstName              *string   `gorm:"column:first_name;type:varchar(64)"`
	LastName               *string   `gorm:"column:last_name;type:varchar(64)"`
	Description            *string   `gorm:"column:description;type:text"`
	OtherLangName          *string   `gorm:"column:other_lang_name;type:varchar(64)"`
	Status                 string    `gorm:"column:status;type:varchar(32);default:ACTIVE"`
	PhotoURL               *string   `gorm:"column:photo_url;type:varchar(512)"`
	HomeCountryCode        *string   `gorm:"column:home_country_code;type:varchar(3)"`
	CompetitionCountryCode *string   `gorm:"column:competition_country_code;type:varchar(3)"`
	Verified               bool      `gorm:"column:verified;default:false"`
	CreatedAt              time.Time `gorm:"column:created_at;not null"`
	UpdatedAt              time.Time `gorm:"column:updated_at;not null"`
	CreatedBy              string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy              *string   `gorm:"column:updated_by;type:varchar(64)"`

	MaxRating *MaxRating `gorm:"foreignKey:UserID;references:UserID"`
	Addresses []Address  `gorm:"foreignKey:UserID;references:UserID"`
}

func (Member) TableName() string {
	return "member"
}

// MaxRating is the highest rating a member has reached on any track.
type MaxRating struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex;not null"`
	Rating      int       `gorm:"column:rating;not null"`
	Track       *string   `gorm:"column:track;type:varchar(32)"`
	SubTrack    *string   `gorm:"column:sub_track;type:varchar(64)"`
	RatingColor string    `gorm:"column:rating_color;type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy   *string   `gorm:"column:updated_by;type:varchar(64)"`
}

func (MaxRating) TableName() string {
	return "member_max_rating"
}

// Address is a postal address of a member.
type Address struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	UserID       int64     `gorm:"column:user_id;index;not null"`
	StreetAddr1  *string   `gorm:"column:street_addr_1;type:varchar(255)"`
	StreetAddr2  *string   `gorm:"column:street_addr_2;type:varchar(255)"`
	City         *string   `gorm:"column:city;type:varchar(128)"`
	Zip          *string   `gorm:"column:zip;type:varchar(32)"`
	StateCode    *string   `gorm:"column:state_code;type:varchar(32)"`
	Type         string    `gorm:"column:type;type:varchar(32);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
	CreatedBy    string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy    *string   `gorm:"column:updated_by;type:varchar(64)"`
}

func (Address) TableName() string {
	return "member_address"
}

// All returns every member model, in migration order.
func All() []any {
	return []any{&Member{}, &MaxRating{}, &Address{}}
}
