package member

import (
	"member-api/core/utils"
	"member-api/feature/member/models"
)

// ratingBands maps exclusive upper rating limits to display colors.
var ratingBands = []struct {
	limit int
	color string
}{
	{900, "#9D9FA0"},
	{1200, "#69C329"},
	{1500, "#616BD5"},
	{2200, "#FCD617"},
}

const topRatingColor = "#EF3A3A"

// RatingColor returns the display color of a rating.
func RatingColor(rating int) string {
	for _, band := range ratingBands {
		if rating < band.limit {
			return band.color
		}
	}
	return topRatingColor
}

// MaxRatingDocument is the public view of a member's max rating.
type MaxRatingDocument struct {
	Rating      int     `json:"rating"`
	Track       *string `json:"track"`
	SubTrack    *string `json:"subTrack"`
	RatingColor string  `json:"ratingColor"`
}

// AddressDocument is an address without identifiers or audit data.
type AddressDocument struct {
	StreetAddr1 *string `json:"streetAddr1"`
	StreetAddr2 *string `json:"streetAddr2"`
	City        *string `json:"city"`
	Zip         *string `json:"zip"`
	StateCode   *string `json:"stateCode"`
	Type        string  `json:"type"`
}

// NewMaxRatingDocument converts a max rating row. Nil stays nil.
func NewMaxRatingDocument(r *models.MaxRating) *MaxRatingDocument {
	if r == nil {
		return nil
	}
	color := r.RatingColor
	if color == "" {
		color = RatingColor(r.Rating)
	}
	return &MaxRatingDocument{
		Rating:      r.Rating,
		Track:       r.Track,
		SubTrack:    r.SubTrack,
		RatingColor: color,
	}
}

// BuildMemberResponse converts a member to its response document. Secure
// fields are dropped and the last name is cut to its initial unless the
// caller may manage the member.
func BuildMemberResponse(m *models.Member, canManage bool, secureFields []string) map[string]any {
	addresses := make([]AddressDocument, 0, len(m.Addresses))
	for _, a := range m.Addresses {
		addresses = append(addresses, AddressDocument{
			StreetAddr1: a.StreetAddr1,
			StreetAddr2: a.StreetAddr2,
			City:        a.City,
			Zip:         a.Zip,
			StateCode:   a.StateCode,
			Type:        a.Type,
		})
	}

	lastName := m.LastName
	if !canManage && lastName != nil && len(*lastName) > 0 {
		initial := string([]rune(*lastName)[:1])
		lastName = &initial
	}

	doc := map[string]any{
		"userId":                 m.UserID,
		"handle":                 m.Handle,
		"handleLower":            m.HandleLower,
		"email":                  m.Email,
		"firstName":              m.FirstName,
		"lastName":               lastName,
		"description":            m.Description,
		"otherLangName":          m.OtherLangName,
		"status":                 m.Status,
		"photoURL":               m.PhotoURL,
		"homeCountryCode":        m.HomeCountryCode,
		"competitionCountryCode": m.CompetitionCountryCode,
		"verified":               m.Verified,
		"maxRating":              NewMaxRatingDocument(m.MaxRating),
		"addresses":              addresses,
		"createdAt":              utils.Millis(m.CreatedAt),
		"updatedAt":              utils.Millis(m.UpdatedAt),
		"createdBy":              m.CreatedBy,
		"updatedBy":              m.UpdatedBy,
	}

	if !canManage {
		for _, field := range secureFields {
			delete(doc, field)
		}
	}
	return doc
}
