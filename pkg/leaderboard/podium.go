package leaderboard

// Standing is an entry placed on the podium.
type Standing struct {
	Place int // 1, 2 or 3
	Entry Entry
}

// MedalKind identifies the podium colour class of a place.
type MedalKind string

const (
	MedalGold   MedalKind = "gold"
	MedalSilver MedalKind = "silver"
	MedalBronze MedalKind = "bronze"
	MedalNone   MedalKind = "none"
)

// Medal returns the medal for a podium place.
func Medal(place int) MedalKind {
	switch place {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return MedalNone
	}
}

// Winner reports whether st is the first-place standing.
func (st Standing) Winner() bool { return st.Place == 1 }
