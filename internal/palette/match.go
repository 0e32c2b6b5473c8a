package palette

// MatchResult describes how a color was matched against a palette.
type MatchResult struct {
	Input            string  `json:"input"`
	Label            string  `json:"label"`
	Color            string  `json:"color"`
	Index            int     `json:"index"`
	WeightedDistance int64   `json:"weighted_distance"`
	Distance         float64 `json:"distance"`
	DeltaE           float64 `json:"delta_e"`
}

// Match runs Closest for c and reports the winning entry with its distances.
// DeltaE is informational; it never affects which entry wins.
func (p *Palette) Match(c Color) (*MatchResult, error) {
	e, err := p.Closest(c)
	if err != nil {
		return nil, err
	}

	index := 0
	for i, pe := range p.entries {
		if pe == e {
			index = i
			break
		}
	}

	return &MatchResult{
		Input:            c.Hex(),
		Label:            e.Label,
		Color:            e.Color.Hex(),
		Index:            index,
		WeightedDistance: WeightedDistance(c, e.Color),
		Distance:         Distance(c, e.Color),
		DeltaE:           DeltaE(c, e.Color),
	}, nil
}

// MatchHex parses key with ParseHex and matches it.
func (p *Palette) MatchHex(key string) (*MatchResult, error) {
	c, err := ParseHex(key)
	if err != nil {
		return nil, err
	}
	return p.Match(c)
}

// EntryInfo is an entry as reported to clients.
type EntryInfo struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
	Color Color  `json:"color"`
}

// Describe lists the entries in palette order.
func (p *Palette) Describe() []EntryInfo {
	entries := p.Entries()
	infos := make([]EntryInfo, len(entries))
	for i, e := range entries {
		infos[i] = EntryInfo{Index: i, Label: e.Label, Hex: e.Color.Hex(), Color: e.Color}
	}
	return infos
}
