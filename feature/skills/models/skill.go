package models

import "time"

// SkillCategory groups related skills.
type SkillCategory struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name        string    `gorm:"column:name;type:varchar(128);uniqueIndex;not null"`
	Description *string   `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy   *string   `gorm:"column:updated_by;type:varchar(64)"`
}

func (SkillCategory) TableName() string {
	return "skill_category"
}

// Skill is an entry of the skill catalog.
type Skill struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey"`
	CategoryID  string    `gorm:"column:category_id;type:varchar(36);index;not null"`
	Name        string    `gorm:"column:name;type:varchar(128);uniqueIndex;not null"`
	Description *string   `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy   *string   `gorm:"column:updated_by;type:varchar(64)"`

	Category SkillCategory `gorm:"foreignKey:CategoryID"`
}

func (Skill) TableName() string {
	return "skill"
}

// DisplayMode controls how a member skill is shown on the profile.
type DisplayMode struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	CreatedBy string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy *string   `gorm:"column:updated_by;type:varchar(64)"`
}

func (DisplayMode) TableName() string {
	return "display_mode"
}

// SkillLevel is a proficiency level a member can claim for a skill.
type SkillLevel struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name        string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null"`
	Description string    `gorm:"column:description;type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy   *string   `gorm:"column:updated_by;type:varchar(64)"`
}

func (SkillLevel) TableName() string {
	return "skill_level"
}

// MemberSkill links a member to a catalog skill.
type MemberSkill struct {
	ID            string    `gorm:"column:id;type:varchar(36);primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex:idx_member_skill"`
	SkillID       string    `gorm:"column:skill_id;type:varchar(36);not null;uniqueIndex:idx_member_skill"`
	DisplayModeID *string   `gorm:"column:display_mode_id;type:varchar(36)"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
	CreatedBy     string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy     *string   `gorm:"column:updated_by;type:varchar(64)"`

	Skill       Skill              `gorm:"foreignKey:SkillID"`
	DisplayMode *DisplayMode       `gorm:"foreignKey:DisplayModeID"`
	Levels      []MemberSkillLevel `gorm:"foreignKey:MemberSkillID;constraint:OnDelete:CASCADE"`
}

func (MemberSkill) TableName() string {
	return "member_skill"
}

// MemberSkillLevel is a level claimed on a member skill.
type MemberSkillLevel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	MemberSkillID string    `gorm:"column:member_skill_id;type:varchar(36);index;not null"`
	SkillLevelID  string    `gorm:"column:skill_level_id;type:varchar(36);not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
	CreatedBy     string    `gorm:"column:created_by;type:varchar(64);not null"`
	UpdatedBy     *string   `gorm:"column:updated_by;type:varchar(64)"`

	SkillLevel SkillLevel `gorm:"foreignKey:SkillLevelID"`
}

func (MemberSkillLevel) TableName() string {
	return "member_skill_level"
}
