// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		expr         string
		chapterCount int
		want         []int
		wantInvalid  int
	}{
		{
			name:         "singles and range",
			expr:         "1,3,5-7,10",
			chapterCount: 15,
			want:         []int{1, 3, 5, 6, 7, 10},
		},
		{
			name:         "single number",
			expr:         "4",
			chapterCount: 10,
			want:         []int{4},
		},
		{
			name:         "whitespace is insignificant",
			expr:         " 1 , 3 , 5 - 7 ",
			chapterCount: 10,
			want:         []int{1, 3, 5, 6, 7},
		},
		{
			name:         "duplicates collapse",
			expr:         "1,1,2,2-3",
			chapterCount: 5,
			want:         []int{1, 2, 3},
		},
		{
			name:         "empty expression selects all",
			expr:         "",
			chapterCount: 4,
			want:         []int{1, 2, 3, 4},
		},
		{
			name:         "whitespace-only expression selects all",
			expr:         "   ",
			chapterCount: 3,
			want:         []int{1, 2, 3},
		},
		{
			name:         "out-of-range single is skipped, rest proceeds",
			expr:         "1,20",
			chapterCount: 15,
			want:         []int{1},
			wantInvalid:  1,
		},
		{
			name:         "reversed range rejected, not reinterpreted",
			expr:         "5-3",
			chapterCount: 10,
			want:         []int{},
			wantInvalid:  1,
		},
		{
			name:         "non-numeric term skipped",
			expr:         "1,abc,3",
			chapterCount: 5,
			want:         []int{1, 3},
			wantInvalid:  1,
		},
		{
			name:         "partially out-of-range keeps valid part",
			expr:         "14-20",
			chapterCount: 15,
			want:         []int{14, 15},
			wantInvalid:  1,
		},
		{
			name:         "empty term between commas",
			expr:         "1,,2",
			chapterCount: 5,
			want:         []int{1, 2},
			wantInvalid:  1,
		},
		{
			name:         "descending input comes out ascending",
			expr:         "9,5,1",
			chapterCount: 10,
			want:         []int{1, 5, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Parse(tt.expr, tt.chapterCount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.Numbers)
			assert.Len(t, sel.Invalid, tt.wantInvalid)
		})
	}
}

func TestParse_InvalidTermsAreNamed(t *testing.T) {
	sel, err := Parse("1,20", 15)
	require.NoError(t, err)
	require.Len(t, sel.Invalid, 1)
	assert.Contains(t, sel.Invalid[0].Reason, "20")
	assert.Contains(t, sel.Invalid[0].Reason, "1-15")
}

func TestParse_NoChapters(t *testing.T) {
	_, err := Parse("1", 0)
	require.Error(t, err)
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		want    string
	}{
		{"empty", nil, ""},
		{"single", []int{3}, "3"},
		{"pair stays as singles", []int{1, 2}, "1,2"},
		{"run collapses", []int{5, 6, 7}, "5-7"},
		{"mixed", []int{1, 3, 5, 6, 7, 10}, "1,3,5-7,10"},
		{"unsorted with duplicates", []int{7, 5, 6, 5, 1}, "1,5-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.numbers))
		})
	}
}

// TestParse_RoundTrip checks that serializing a parsed set and re-parsing
// it yields the same set.
func TestParse_RoundTrip(t *testing.T) {
	exprs := []string{"1,3,5-7,10", "2-4", "1", "8,1,3-5", "1-15"}
	for _, expr := range exprs {
		sel, err := Parse(expr, 15)
		require.NoError(t, err)

		again, err := Parse(Canonical(sel.Numbers), 15)
		require.NoError(t, err)
		assert.Equal(t, sel.Numbers, again.Numbers, "round-trip of %q", expr)
		assert.Empty(t, again.Invalid)
	}
}
