package timeline

// Tier is one granularity step: ranges of up to MaxDays days use WidthPx per
// day. A tier with MaxDays == 0 is unbounded and must come last.
type Tier struct {
	MaxDays int `yaml:"max_days" toml:"max_days"`
	WidthPx int `yaml:"width_px" toml:"width_px"`
}

// DefaultTiers: up to 30 days at 30px, up to 90 days at 20px, beyond at 10px.
var DefaultTiers = []Tier{
	{MaxDays: 30, WidthPx: 30},
	{MaxDays: 90, WidthPx: 20},
	{MaxDays: 0, WidthPx: 10},
}

// ColumnWidth picks the day column width for a range of totalDays days.
func ColumnWidth(tiers []Tier, totalDays int) int {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	for _, t := range tiers {
		if t.MaxDays == 0 || totalDays <= t.MaxDays {
			return t.WidthPx
		}
	}
	return tiers[len(tiers)-1].WidthPx
}

// ValidTiers reports whether tiers are usable: positive widths, strictly
// increasing bounds, and at most one unbounded tier in last position.
func ValidTiers(tiers []Tier) bool {
	if len(tiers) == 0 {
		return false
	}
	prev := 0
	for i, t := range tiers {
		if t.WidthPx <= 0 {
			return false
		}
		if t.MaxDays == 0 {
			return i == len(tiers)-1
		}
		if t.MaxDays <= prev {
			return false
		}
		prev = t.MaxDays
	}
	return true
}
