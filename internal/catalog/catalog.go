// Package catalog holds the static shop catalog: the purchasable cases with
// their item templates, and the VPN subscription plans. The catalog is not
// persisted; inventory rows copy template values at draw time.
package catalog

// Rarity tiers, cheapest to rarest.
const (
	RarityCommon    = "Common"
	RarityUncommon  = "Uncommon"
	RarityRare      = "Rare"
	RarityEpic      = "Epic"
	RarityLegendary = "Legendary"
	RarityArcane    = "Arcane"
	RarityMythical  = "Mythical"
)

// ItemTemplate describes one possible drop. Chance is a weight in percent;
// weights inside a case need not sum to exactly 100, the reward engine
// normalizes by the total.
type ItemTemplate struct {
	Name   string
	Rarity string
	Chance float64
	Value  float64
	Emoji  string
}

// Case is a purchasable lootbox. Price is in rubles, Stars in Telegram
// Stars, GoldYield is the advertised GOLD value of the case.
type Case struct {
	ID        int
	Name      string
	Price     float64
	Stars     int
	GoldYield float64
	Items     []ItemTemplate
}

// Plan is a VPN subscription sold through the key-pool fulfillment path.
type Plan struct {
	ID          int
	Name        string
	Price       float64
	Duration    string
	Description string
}

var cases = map[int]Case{
	1: {
		ID: 1, Name: "🟫 Кейс «Новичок»", Price: 19, Stars: 10, GoldYield: 10,
		Items: []ItemTemplate{
			{Name: "Glock «Sand»", Rarity: RarityCommon, Chance: 65, Value: 0.07, Emoji: "⚪"},
			{Name: "USP «Line»", Rarity: RarityCommon, Chance: 22, Value: 0.10, Emoji: "⚪"},
			{Name: "P350 «Forest»", Rarity: RarityUncommon, Chance: 10, Value: 0.25, Emoji: "🔵"},
			{Name: "MP7 «Urban»", Rarity: RarityRare, Chance: 2.8, Value: 1.50, Emoji: "🔷"},
			{Name: "Fabm «Boom»", Rarity: RarityLegendary, Chance: 0.2, Value: 150, Emoji: "🟣"},
		},
	},
	2: {
		ID: 2, Name: "🟦 Кейс «Городской Штурм»", Price: 45, Stars: 26, GoldYield: 25,
		Items: []ItemTemplate{
			{Name: "Glock «Night»", Rarity: RarityCommon, Chance: 55, Value: 0.12, Emoji: "⚪"},
			{Name: "MP5 «Urban»", Rarity: RarityUncommon, Chance: 25, Value: 0.30, Emoji: "🔵"},
			{Name: "AKR «Carbon»", Rarity: RarityRare, Chance: 15, Value: 1.80, Emoji: "🔷"},
			{Name: "FAMAS «Beagle»", Rarity: RarityEpic, Chance: 4.7, Value: 15, Emoji: "🟣"},
			{Name: "M4A1 «Lizard»", Rarity: RarityLegendary, Chance: 0.3, Value: 70, Emoji: "🟣"},
		},
	},
	3: {
		ID: 3, Name: "🟨 Кейс «Зона Напряжения»", Price: 85, Stars: 50, GoldYield: 50,
		Items: []ItemTemplate{
			{Name: "USP «Stone»", Rarity: RarityCommon, Chance: 48, Value: 0.20, Emoji: "⚪"},
			{Name: "UMP45 «Urban»", Rarity: RarityUncommon, Chance: 27, Value: 0.40, Emoji: "🔵"},
			{Name: "M4 «Urban»", Rarity: RarityRare, Chance: 18, Value: 2.0, Emoji: "🔷"},
			{Name: "FAMAS «Fury»", Rarity: RarityEpic, Chance: 6.6, Value: 35, Emoji: "🟣"},
			{Name: "M4 «Necromancer»", Rarity: RarityLegendary, Chance: 0.4, Value: 100, Emoji: "🟣"},
		},
	},
	4: {
		ID: 4, Name: "⬛ Кейс «Чёрный Рынок»", Price: 150, Stars: 89, GoldYield: 85,
		Items: []ItemTemplate{
			{Name: "Glock «Stone»", Rarity: RarityCommon, Chance: 40, Value: 0.25, Emoji: "⚪"},
			{Name: "MP7 «Grey»", Rarity: RarityUncommon, Chance: 28, Value: 0.50, Emoji: "🔵"},
			{Name: "AKR «Sandstorm»", Rarity: RarityRare, Chance: 22, Value: 3.0, Emoji: "🔷"},
			{Name: "SM1014 «Blaster»", Rarity: RarityEpic, Chance: 8.0, Value: 45, Emoji: "🟣"},
			{Name: "AKR «Necromancer»", Rarity: RarityLegendary, Chance: 2.0, Value: 200, Emoji: "🟣"},
		},
	},
	5: {
		ID: 5, Name: "🌙 Кейс «Полуночный Дозор»", Price: 250, Stars: 149, GoldYield: 140,
		Items: []ItemTemplate{
			{Name: "USP «Night»", Rarity: RarityCommon, Chance: 35, Value: 0.30, Emoji: "⚪"},
			{Name: "MP5 «Night»", Rarity: RarityUncommon, Chance: 30, Value: 0.60, Emoji: "🔵"},
			{Name: "M4 «Night Wolf»", Rarity: RarityRare, Chance: 22, Value: 4.5, Emoji: "🔷"},
			{Name: "FAMAS «Hull»", Rarity: RarityEpic, Chance: 11.0, Value: 50, Emoji: "🟣"},
			{Name: "SM1014 «Necromancer»", Rarity: RarityArcane, Chance: 2.0, Value: 500, Emoji: "🔴"},
		},
	},
	6: {
		ID: 6, Name: "🕶 Кейс «Секретная Операция»", Price: 380, Stars: 227, GoldYield: 210,
		Items: []ItemTemplate{
			{Name: "MP7 «Thorn»", Rarity: RarityUncommon, Chance: 35, Value: 1.0, Emoji: "🔵"},
			{Name: "AKR «Tiger»", Rarity: RarityRare, Chance: 30, Value: 8.0, Emoji: "🔷"},
			{Name: "M4 «Demon»", Rarity: RarityEpic, Chance: 20, Value: 65, Emoji: "🟣"},
			{Name: "P350 «Neon»", Rarity: RarityEpic, Chance: 11.5, Value: 80, Emoji: "🟣"},
			{Name: "MAC10 «Argo»", Rarity: RarityArcane, Chance: 3.5, Value: 600, Emoji: "🔴"},
		},
	},
	7: {
		ID: 7, Name: "👑 Кейс «Элитный Отряд»", Price: 550, Stars: 329, GoldYield: 300,
		Items: []ItemTemplate{
			{Name: "MP5 «Blaze»", Rarity: RarityUncommon, Chance: 30, Value: 1.5, Emoji: "🔵"},
			{Name: "AKR «Hunter»", Rarity: RarityRare, Chance: 28, Value: 12, Emoji: "🔷"},
			{Name: "FAMAS «Anger»", Rarity: RarityEpic, Chance: 20, Value: 75, Emoji: "🟣"},
			{Name: "M16 «Winged»", Rarity: RarityEpic, Chance: 15.0, Value: 90, Emoji: "🟣"},
			{Name: "MP9 «Hydra»", Rarity: RarityArcane, Chance: 7.0, Value: 700, Emoji: "🔴"},
		},
	},
	8: {
		ID: 8, Name: "💥 Кейс «Зона Разрушения»", Price: 700, Stars: 419, GoldYield: 380,
		Items: []ItemTemplate{
			{Name: "M4 «Predator»", Rarity: RarityRare, Chance: 35, Value: 15, Emoji: "🔷"},
			{Name: "AKR «Nano»", Rarity: RarityEpic, Chance: 25, Value: 85, Emoji: "🟣"},
			{Name: "AWM «Scratch»", Rarity: RarityEpic, Chance: 25, Value: 95, Emoji: "🟣"},
			{Name: "UMP45 «Beast»", Rarity: RarityArcane, Chance: 12, Value: 700, Emoji: "🔴"},
			{Name: "Fabm «Thief»", Rarity: RarityArcane, Chance: 3, Value: 800, Emoji: "🔴"},
		},
	},
	9: {
		ID: 9, Name: "🏆 Кейс «Триумф»", Price: 850, Stars: 509, GoldYield: 460,
		Items: []ItemTemplate{
			{Name: "AKR «Emperor»", Rarity: RarityEpic, Chance: 40, Value: 100, Emoji: "🟣"},
			{Name: "M4 «Dragon»", Rarity: RarityEpic, Chance: 30, Value: 120, Emoji: "🟣"},
			{Name: "AWP «Gold»", Rarity: RarityArcane, Chance: 20, Value: 800, Emoji: "🔴"},
			{Name: "USP «Royal»", Rarity: RarityArcane, Chance: 8, Value: 900, Emoji: "🔴"},
			{Name: "Karambit «King»", Rarity: RarityMythical, Chance: 2, Value: 1500, Emoji: "🟡"},
		},
	},
	10: {
		ID: 10, Name: "🌟 Кейс «Абсолют»", Price: 999, Stars: 598, GoldYield: 540,
		Items: []ItemTemplate{
			{Name: "M4 «Godlike»", Rarity: RarityArcane, Chance: 35, Value: 850, Emoji: "🔴"},
			{Name: "AKR «Infinity»", Rarity: RarityArcane, Chance: 30, Value: 900, Emoji: "🔴"},
			{Name: "AWP «Cosmos»", Rarity: RarityArcane, Chance: 20, Value: 1000, Emoji: "🔴"},
			{Name: "Butterfly «Divine»", Rarity: RarityMythical, Chance: 10, Value: 1800, Emoji: "🟡"},
			{Name: "Karambit «Universe»", Rarity: RarityMythical, Chance: 5, Value: 2500, Emoji: "🟡"},
		},
	},
}

var plans = map[int]Plan{
	1: {
		ID: 1, Name: "🔐 VPN Premium 1 месяц", Price: 299, Duration: "30 дней",
		Description: "• 50+ серверов\n• До 3 устройств\n• Безлимитный трафик",
	},
	2: {
		ID: 2, Name: "🚀 VPN Premium 3 месяца", Price: 799, Duration: "90 дней",
		Description: "• Экономия 10%\n• До 5 устройств\n• Приоритетная поддержка",
	},
	3: {
		ID: 3, Name: "👑 VPN Premium 1 год", Price: 2499, Duration: "365 дней",
		Description: "• Экономия 30%\n• Неограниченно устройств\n• Персональный сервер",
	},
}

// GetCase returns the case definition and whether it exists.
func GetCase(id int) (Case, bool) {
	c, ok := cases[id]
	return c, ok
}

// Cases returns all case IDs in ascending order.
func Cases() []Case {
	out := make([]Case, 0, len(cases))
	for id := 1; id <= len(cases); id++ {
		if c, ok := cases[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// GetPlan returns the VPN plan definition and whether it exists.
func GetPlan(id int) (Plan, bool) {
	p, ok := plans[id]
	return p, ok
}

// Plans returns all plans in ascending ID order.
func Plans() []Plan {
	out := make([]Plan, 0, len(plans))
	for id := 1; id <= len(plans); id++ {
		if p, ok := plans[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// RarityEmoji maps a rarity tier to its display emoji.
func RarityEmoji(rarity string) string {
	switch rarity {
	case RarityCommon:
		return "⚪"
	case RarityUncommon:
		return "🔵"
	case RarityRare:
		return "🔷"
	case RarityEpic, RarityLegendary:
		return "🟣"
	case RarityArcane:
		return "🔴"
	case RarityMythical:
		return "🟡"
	default:
		return "⚪"
	}
}
