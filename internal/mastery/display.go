package mastery

// Band is the display label for a mastery level.
type Band string

const (
	BandNew        Band = "new"
	BandLearning   Band = "learning"
	BandFamiliar   Band = "familiar"
	BandProficient Band = "proficient"
	BandMastered   Band = "mastered"
)

// BandOf maps a level to its display band.
func BandOf(level int) Band {
	switch {
	case level <= 0:
		return BandNew
	case level <= 2:
		return BandLearning
	case level == 3:
		return BandFamiliar
	case level == 4:
		return BandProficient
	default:
		return BandMastered
	}
}
