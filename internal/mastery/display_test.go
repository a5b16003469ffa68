package mastery

import "testing"

func TestBandOf(t *testing.T) {
	tests := []struct {
		level int
		want  Band
	}{
		{0, BandNew},
		{1, BandLearning},
		{2, BandLearning},
		{3, BandFamiliar},
		{4, BandProficient},
		{5, BandMastered},
	}
	for _, tt := range tests {
		if got := BandOf(tt.level); got != tt.want {
			t.Errorf("BandOf(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
