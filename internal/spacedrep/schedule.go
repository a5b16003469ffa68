package spacedrep

// Ease factor tuning for the SM-2 variant.
const (
	// DefaultEaseFactor is the ease assigned to a new card.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the ease floor. There is no ceiling.
	MinEaseFactor = 1.3

	AgainEasePenalty = 0.2
	HardEasePenalty  = 0.15
	EasyEaseBonus    = 0.15
)

// Interval tuning.
const (
	// HardIntervalMultiplier grows the interval slightly on a Hard grade.
	HardIntervalMultiplier = 1.2

	// EasyIntervalBonus is applied on top of the ease factor for Easy.
	EasyIntervalBonus = 1.3

	// MasteredIntervalDays and MasteredReviewCount are the thresholds a
	// Good or Easy grade must reach to promote a card to Mastered.
	MasteredIntervalDays = 21
	MasteredReviewCount  = 5
)
