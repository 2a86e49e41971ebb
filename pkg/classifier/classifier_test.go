package classifier

import (
	"math"
	"testing"

	"github.com/younsl/s3inventory/internal/models"
)

func size(v float64) *float64 {
	return &v
}

func TestSizeScoreBoundaries(t *testing.T) {
	tests := []struct {
		name string
		size *float64
		want int
	}{
		{"nil", nil, 1},
		{"NaN", size(math.NaN()), 1},
		{"zero", size(0), 1},
		{"exactly 10GB", size(10 * GB), 1},
		{"10GB plus one byte", size(10*GB + 1), 2},
		{"exactly 100GB", size(100 * GB), 2},
		{"100GB plus one byte", size(100*GB + 1), 3},
		{"200GB", size(200 * GB), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sizeScore(tt.size); got != tt.want {
				t.Errorf("sizeScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantScore int
		want      models.Classification
	}{
		{
			name:      "small private bucket",
			in:        Input{SizeBytes: size(1 * GB)},
			wantScore: 3,
			want:      models.Classification{Importance: models.ImportanceIrrelevant, Removable: true},
		},
		{
			name:      "score 4",
			in:        Input{SizeBytes: size(50 * GB)},
			wantScore: 4,
			want:      models.Classification{Importance: models.ImportanceIrrelevant, Removable: true},
		},
		{
			name:      "score 5",
			in:        Input{SizeBytes: size(1 * GB), PublicAccess: true},
			wantScore: 5,
			want:      models.Classification{Importance: models.ImportanceImportant},
		},
		{
			name:      "score 7",
			in:        Input{SizeBytes: size(1 * GB), PublicAccess: true, PublicPolicy: true},
			wantScore: 7,
			want:      models.Classification{Importance: models.ImportanceImportant},
		},
		{
			name:      "score 8",
			in:        Input{SizeBytes: size(50 * GB), PublicAccess: true, PublicPolicy: true},
			wantScore: 8,
			want:      models.Classification{Importance: models.ImportanceCritical},
		},
		{
			name:      "large public bucket",
			in:        Input{SizeBytes: size(200 * GB), PublicAccess: true, PublicPolicy: true},
			wantScore: 9,
			want:      models.Classification{Importance: models.ImportanceCritical},
		},
		{
			name:      "missing size",
			in:        Input{PublicPolicy: true},
			wantScore: 5,
			want:      models.Classification{Importance: models.ImportanceImportant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.in); got != tt.wantScore {
				t.Errorf("Score() = %d, want %d", got, tt.wantScore)
			}
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	sizes := []*float64{nil, size(0), size(10 * GB), size(100*GB + 1)}
	for _, s := range sizes {
		for _, access := range []bool{false, true} {
			for _, policy := range []bool{false, true} {
				in := Input{SizeBytes: s, PublicAccess: access, PublicPolicy: policy}
				first := Classify(in)
				for i := 0; i < 3; i++ {
					if got := Classify(in); got != first {
						t.Fatalf("Classify(%+v) changed between calls: %+v then %+v", in, first, got)
					}
				}
				if score := Score(in); score < 3 || score > 9 {
					t.Errorf("Score(%+v) = %d, out of range", in, score)
				}
			}
		}
	}
}
