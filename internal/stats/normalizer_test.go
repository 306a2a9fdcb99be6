package stats

import (
	"testing"

	"github.com/limloop/limloop/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []models.RecycleStat
		want []int
	}{
		{
			name: "empty list stays empty",
			in:   []models.RecycleStat{},
			want: []int{},
		},
		{
			name: "single entry forced to 100",
			in:   []models.RecycleStat{{Category: "Nhựa", TotalKg: 2, Percentage: 37.4}},
			want: []int{100},
		},
		{
			name: "already balanced list is unchanged",
			in: []models.RecycleStat{
				{Category: "Nhựa", Percentage: 40.2},
				{Category: "Giấy", Percentage: 19.7},
				{Category: "Nhôm", Percentage: 40.1},
			},
			want: []int{40, 20, 40},
		},
		{
			name: "last entry absorbs rounding deficit",
			in: []models.RecycleStat{
				{Category: "Nhựa", Percentage: 33.3},
				{Category: "Giấy", Percentage: 33.3},
				{Category: "Thủy tinh", Percentage: 33.4},
			},
			want: []int{33, 33, 34},
		},
		{
			name: "last entry absorbs rounding excess",
			in: []models.RecycleStat{
				{Category: "Nhựa", Percentage: 24.6},
				{Category: "Giấy", Percentage: 24.6},
				{Category: "Nhôm", Percentage: 24.6},
				{Category: "Thủy tinh", Percentage: 26.2},
			},
			want: []int{25, 25, 25, 25},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() returned %d rows, want %d", len(got), len(tt.want))
			}
			sum := 0
			for i, row := range got {
				if row.Percentage != tt.want[i] {
					t.Errorf("row %d percentage = %d, want %d", i, row.Percentage, tt.want[i])
				}
				if row.Category != tt.in[i].Category {
					t.Errorf("row %d category = %q, want %q (order must be preserved)", i, row.Category, tt.in[i].Category)
				}
				if row.TotalKg != tt.in[i].TotalKg {
					t.Errorf("row %d totalKg = %v, want untouched %v", i, row.TotalKg, tt.in[i].TotalKg)
				}
				sum += row.Percentage
			}
			if len(got) > 0 && sum != 100 {
				t.Errorf("percentages sum = %d, want exactly 100", sum)
			}
		})
	}
}
