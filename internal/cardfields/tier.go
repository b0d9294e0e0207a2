package cardfields

// Tier is a named rating band.
type Tier struct {
	Min   int
	Max   int
	Label string
	Color string
}

// Tiers lists the rating bands from highest to lowest.
var Tiers = []Tier{
	{Min: 90, Max: 98, Label: "World Class", Color: "#FFD700"},
	{Min: 85, Max: 89, Label: "Elite", Color: "#D4A843"},
	{Min: 75, Max: 84, Label: "Professional", Color: "#B8922E"},
	{Min: 65, Max: 74, Label: "Rising Star", Color: "#C9A84C"},
}

// RatingTier returns the band containing rating. Ratings outside every band
// fall back to the lowest one.
func RatingTier(rating int) Tier {
	for _, tier := range Tiers {
		if rating >= tier.Min && rating <= tier.Max {
			return tier
		}
	}
	return Tiers[len(Tiers)-1]
}
