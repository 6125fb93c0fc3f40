package utils

import (
	"strings"
	"testing"
)

func TestIsValidDisplayName(t *testing.T) {
	valid := []string{"Speedy", "a", strings.Repeat("x", 50), "name with spaces"}
	for _, name := range valid {
		if !IsValidDisplayName(name) {
			t.Errorf("name %q should be valid", name)
		}
	}

	invalid := []string{"", "   ", strings.Repeat("x", 51)}
	for _, name := range invalid {
		if IsValidDisplayName(name) {
			t.Errorf("name %q should be invalid", name)
		}
	}
}

func TestIsValidMapNumber(t *testing.T) {
	for mapNum := 1; mapNum <= 5; mapNum++ {
		if !IsValidMapNumber(mapNum) {
			t.Errorf("map %d should be valid", mapNum)
		}
	}
	for _, mapNum := range []int{0, -1, 6, 100} {
		if IsValidMapNumber(mapNum) {
			t.Errorf("map %d should be invalid", mapNum)
		}
	}
}

func TestIsValidTimeMs(t *testing.T) {
	valid := []int{1000, 83456, 600000}
	for _, ms := range valid {
		if !IsValidTimeMs(ms) {
			t.Errorf("time %d should be valid", ms)
		}
	}
	invalid := []int{0, 999, 600001, -5000}
	for _, ms := range invalid {
		if IsValidTimeMs(ms) {
			t.Errorf("time %d should be invalid", ms)
		}
	}
}
