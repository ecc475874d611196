package datemath_test

import (
	"testing"
	"time"

	"loan-advisory-assistant/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "today",
			relative: "today",
			want:     startOfBase,
		},
		{
			name:     "tomorrow",
			relative: "tomorrow",
			want:     startOfBase.AddDate(0, 0, 1),
		},
		{
			name:     "in 3 days",
			relative: "in 3 days",
			want:     startOfBase.AddDate(0, 0, 3),
		},
		{
			name:     "in 2 weeks",
			relative: "in 2 weeks",
			want:     startOfBase.AddDate(0, 0, 14),
		},
		{
			name:     "in 1 month",
			relative: "in 1 month",
			want:     startOfBase.AddDate(0, 1, 0),
		},
		{
			name:     "vague duration rejected",
			relative: "in a few days",
			want:     base,
			wantErr:  true,
		},
		{
			name:     "next monday from wednesday",
			relative: "next monday",
			want:     startOfBase.AddDate(0, 0, 5),
		},
		{
			name:     "next wednesday from wednesday is a week out",
			relative: "next wednesday",
			want:     startOfBase.AddDate(0, 0, 7),
		},
		{
			name:     "unknown weekday rejected",
			relative: "next funday",
			want:     base,
			wantErr:  true,
		},
		{
			name:     "phrase outside the grammar rejected",
			relative: "some random day",
			want:     base,
			wantErr:  true,
		},
		{
			name:     "yesterday rejected",
			relative: "yesterday",
			want:     base,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}
