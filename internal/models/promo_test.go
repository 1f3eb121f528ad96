package models

import "testing"

func TestNormalizePromoCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sale20", "SALE20"},
		{"  Sale20  ", "SALE20"},
		{"ALREADY", "ALREADY"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePromoCode(tt.in); got != tt.want {
			t.Errorf("NormalizePromoCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidPromoCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"SALE20", true},
		{"ABCD", true},
		{"1234", true},
		{"ABC", false},
		{"", false},
		{"sale20", false},
		{"SALE 20", false},
		{"SALE-20", false},
	}

	for _, tt := range tests {
		if got := ValidPromoCode(tt.code); got != tt.want {
			t.Errorf("ValidPromoCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestValidRating(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		if got := ValidRating(rating); got != want {
			t.Errorf("ValidRating(%d) = %v, want %v", rating, got, want)
		}
	}
}

func TestInventoryEntryIsCase(t *testing.T) {
	caseEntry := &InventoryEntry{ItemRarity: RarityCase}
	if !caseEntry.IsCase() {
		t.Error("entry with Case rarity should be a case")
	}
	item := &InventoryEntry{ItemRarity: "Common"}
	if item.IsCase() {
		t.Error("entry with item rarity should not be a case")
	}
}
