package models

// Team is one competing delegation. Icon holds either a data-URL string
// uploaded by the admin or, when icon offload is configured, the public URL
// of the stored image.
type Team struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"uniqueIndex;not null"`
	Color string  `json:"color" gorm:"not null"`
	Slug  string  `json:"slug" gorm:"index"`
	Icon  *string `json:"icon"`
}

// TeamStanding is the aggregated tally for one team across all events.
// Calculated, never stored.
type TeamStanding struct {
	TeamID      uint    `json:"teamId"`
	TeamName    string  `json:"teamName"`
	TeamColor   string  `json:"teamColor"`
	Icon        *string `json:"icon"`
	TotalPoints int     `json:"totalPoints"`
	GoldCount   int     `json:"goldCount"`
	SilverCount int     `json:"silverCount"`
	BronzeCount int     `json:"bronzeCount"`
}
