// Package models defines the GORM models of the skill catalog and of the
// skills claimed by members.
package models

// All returns every skills model, referenced tables first.
func All() []any {
	return []any{
		&SkillCategory{},
		&Skill{},
		&DisplayMode{},
		&SkillLevel{},
		&MemberSkill{},
		&MemberSkillLevel{},
	}
}
