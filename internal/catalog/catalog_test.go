package catalog

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	cases := Cases()
	if len(cases) != 10 {
		t.Fatalf("expected 10 cases, got %d", len(cases))
	}

	prevPrice := 0.0
	for _, c := range cases {
		if c.Price <= prevPrice {
			t.Errorf("case %d: price %.0f not above previous %.0f", c.ID, c.Price, prevPrice)
		}
		prevPrice = c.Price

		if c.Stars <= 0 {
			t.Errorf("case %d: stars price must be positive", c.ID)
		}
		if c.GoldYield <= 0 {
			t.Errorf("case %d: gold yield must be positive", c.ID)
		}
		if len(c.Items) == 0 {
			t.Errorf("case %d: no items", c.ID)
			continue
		}

		var total float64
		for _, it := range c.Items {
			if it.Chance <= 0 {
				t.Errorf("case %d item %q: non-positive chance", c.ID, it.Name)
			}
			if it.Value <= 0 {
				t.Errorf("case %d item %q: non-positive value", c.ID, it.Name)
			}
			total += it.Chance
		}
		// Weights are percents and should stay near 100 so the displayed
		// chances are honest.
		if total < 99 || total > 101 {
			t.Errorf("case %d: chances sum to %.2f, want ~100", c.ID, total)
		}
	}
}

func TestGetCase(t *testing.T) {
	if _, ok := GetCase(1); !ok {
		t.Error("case 1 should exist")
	}
	if _, ok := GetCase(0); ok {
		t.Error("case 0 should not exist")
	}
	if _, ok := GetCase(11); ok {
		t.Error("case 11 should not exist")
	}
}

func TestPlans(t *testing.T) {
	plans := Plans()
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	for _, p := range plans {
		if p.Price <= 0 {
			t.Errorf("plan %d: non-positive price", p.ID)
		}
		if p.Duration == "" {
			t.Errorf("plan %d: empty duration", p.ID)
		}
	}

	if _, ok := GetPlan(4); ok {
		t.Error("plan 4 should not exist")
	}
}

func TestRarityEmoji(t *testing.T) {
	rarities := []string{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityArcane, RarityMythical}
	for _, r := range rarities {
		if RarityEmoji(r) == "" {
			t.Errorf("rarity %s: empty emoji", r)
		}
	}
	if RarityEmoji("Nonsense") != "⚪" {
		t.Error("unknown rarity should fall back to the common emoji")
	}
}
