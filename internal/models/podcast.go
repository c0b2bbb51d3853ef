package models

// Podcast is the single published entity: one audio object, an optional
// cover image, and descriptive text. AudioURL and ImageURL hold either a
// managed blob URL or a static bundled path; only the storage layer's Owns
// predicate distinguishes the two.
type Podcast struct {
	BaseModel
	Title            string  `gorm:"not null" json:"title"`
	ShortDescription string  `gorm:"size:200;not null" json:"shortDescription"`
	FullDescription  *string `json:"fullDescription"`
	AudioURL         string  `gorm:"not null" json:"audioUrl"`
	ImageURL         *string `json:"imageUrl"`
}
