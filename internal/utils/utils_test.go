package utils

import "testing"

func TestCheckPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0123456789", true},
		{"0912345678", true},
		{"012345678", true},
		{"01234567", false},
		{"123456789", false},
		{"0123a56789", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := CheckPhone(tt.phone); got != tt.want {
			t.Errorf("CheckPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
