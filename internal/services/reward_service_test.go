package services

import (
	"math/rand"
	"testing"

	"github.com/koptenko/caseshop_bot/internal/catalog"
)

func TestDrawDeterministicWithSeed(t *testing.T) {
	caseDef, _ := catalog.GetCase(1)

	first := NewRewardServiceWithSource(nil, rand.NewSource(42))
	second := NewRewardServiceWithSource(nil, rand.NewSource(42))

	for i := 0; i < 100; i++ {
		a := first.Draw(caseDef.Items)
		b := second.Draw(caseDef.Items)
		if a.Name != b.Name {
			t.Fatalf("draw %d diverged: %q vs %q", i, a.Name, b.Name)
		}
	}
}

func TestDrawReturnsCatalogItem(t *testing.T) {
	caseDef, _ := catalog.GetCase(10)
	svc := NewRewardServiceWithSource(nil, rand.NewSource(1))

	names := make(map[string]bool, len(caseDef.Items))
	for _, it := range caseDef.Items {
		names[it.Name] = true
	}

	for i := 0; i < 1000; i++ {
		item := svc.Draw(caseDef.Items)
		if !names[item.Name] {
			t.Fatalf("draw returned %q, not in case", item.Name)
		}
	}
}

func TestDrawSingleItem(t *testing.T) {
	svc := NewRewardServiceWithSource(nil, rand.NewSource(7))
	items := []catalog.ItemTemplate{{Name: "only", Chance: 100}}

	for i := 0; i < 10; i++ {
		if got := svc.Draw(items); got.Name != "only" {
			t.Fatalf("single-item draw returned %q", got.Name)
		}
	}
}

// fixedSource pins the raw value behind rand.Float64 so a draw can be
// steered to the edges of the [0, total) range.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

// maxFloatSource drives Float64 to its largest value below 1, 1 - 2^-53.
var maxFloatSource = fixedSource{1<<63 - 1<<10}

func TestDrawUpperBoundaryLandsOnLastItem(t *testing.T) {
	svc := NewRewardServiceWithSource(nil, maxFloatSource)
	items := []catalog.ItemTemplate{
		{Name: "common", Chance: 60},
		{Name: "rare", Chance: 30},
		{Name: "legendary", Chance: 10},
	}

	if got := svc.Draw(items); got.Name != "legendary" {
		t.Errorf("boundary draw returned %q, want the last item", got.Name)
	}
}

func TestDrawSkipsZeroWeightTail(t *testing.T) {
	svc := NewRewardServiceWithSource(nil, maxFloatSource)
	items := []catalog.ItemTemplate{
		{Name: "prize", Chance: 100},
		{Name: "phantom", Chance: 0},
	}

	if got := svc.Draw(items); got.Name != "prize" {
		t.Errorf("draw returned %q; a zero-weight item must not win even at the boundary", got.Name)
	}
}

func TestDrawZeroTotalWeight(t *testing.T) {
	svc := NewRewardServiceWithSource(nil, rand.NewSource(3))
	items := []catalog.ItemTemplate{
		{Name: "first", Chance: 0},
		{Name: "second", Chance: 0},
	}

	// Degenerate weights still yield an item rather than a panic.
	if got := svc.Draw(items); got.Name != "first" {
		t.Errorf("zero-weight draw returned %q, want the first item", got.Name)
	}
}

func TestDrawDistribution(t *testing.T) {
	caseDef, _ := catalog.GetCase(1)
	svc := NewRewardServiceWithSource(nil, rand.NewSource(99))

	const draws = 20000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[svc.Draw(caseDef.Items).Name]++
	}

	var total float64
	for _, it := range caseDef.Items {
		total += it.Chance
	}

	// Each observed frequency should land within 2 percentage points of
	// its weight over 20k draws.
	for _, it := range caseDef.Items {
		want := it.Chance / total
		got := float64(counts[it.Name]) / draws
		if diff := got - want; diff > 0.02 || diff < -0.02 {
			t.Errorf("item %q: frequency %.4f, weight %.4f", it.Name, got, want)
		}
	}
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		price    float64
		discount float64
		want     float64
	}{
		{100, 0.20, 80},
		{19, 0.20, 15.2},
		{999, 0.25, 749.25},
		{45, 0, 45},
		{85, 0.333, 56.7},
	}

	for _, tt := range tests {
		if got := DiscountedPrice(tt.price, tt.discount); got != tt.want {
			t.Errorf("DiscountedPrice(%v, %v) = %v, want %v", tt.price, tt.discount, got, tt.want)
		}
	}
}

func TestFormatDiscount(t *testing.T) {
	if got := FormatDiscount(0.2); got != "20%" {
		t.Errorf("FormatDiscount(0.2) = %q, want 20%%", got)
	}
	if got := FormatDiscount(0.05); got != "5%" {
		t.Errorf("FormatDiscount(0.05) = %q, want 5%%", got)
	}
}
