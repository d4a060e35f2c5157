// Package skills manages the skills members claim from the skill catalog,
// with an optional display mode and proficiency levels per skill.
package skills
