package mains

import "testing"

func TestForTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     Hz
	}{
		{"Europe/London", Hz50},
		{"Europe/Berlin", Hz50},
		{"Australia/Sydney", Hz50},
		{"Asia/Shanghai", Hz50},
		{"Asia/Tokyo", Hz50}, // Japan defaults to the 50 Hz (Tokyo) grid

		{"America/New_York", Hz60},
		{"America/Toronto", Hz60},
		{"America/Mexico_City", Hz60},
		{"America/Sao_Paulo", Hz60},
		{"Asia/Seoul", Hz60},
		{"Asia/Manila", Hz60},

		{"UTC", Hz50},
		{"GMT", Hz50},
		{"Etc/UTC", Hz50},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			if got := ForTimezone(tt.timezone); got != tt.want {
				t.Errorf("ForTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}

func TestLocal(t *testing.T) {
	if got := Local(); got != Hz50 && got != Hz60 {
		t.Errorf("Local() = %v, want 50 or 60", got)
	}
}
