package market

type PlatformStat struct {
	Platform Platform
	Volume   float64
	Count    int
}

type CategoryStat struct {
	Category string
	Volume   float64
	Count    int
}

type Summary struct {
	TotalVolume24h float64
	ActiveCount    int
	Platforms      []PlatformStat
	Categories     []CategoryStat
	TopVolume      []Market
}

const topVolumeCount = 5

// Analytics summarizes a market snapshot. Platform and category rows keep
// the order in which each key first appears.
func Analytics(markets []Market) Summary {
	var s Summary

	platformIdx := make(map[Platform]int)
	categoryIdx := make(map[string]int)

	for _, m := range markets {
		s.TotalVolume24h += m.Volume24h
		if m.Active {
			s.ActiveCount++
		}

		i, ok := platformIdx[m.Platform]
		if !ok {
			i = len(s.Platforms)
			platformIdx[m.Platform] = i
			s.Platforms = append(s.Platforms, PlatformStat{Platform: m.Platform})
		}
		s.Platforms[i].Volume += m.Volume24h
		s.Platforms[i].Count++

		j, ok := categoryIdx[m.Category]
		if !ok {
			j = len(s.Categories)
			categoryIdx[m.Category] = j
			s.Categories = append(s.Categories, CategoryStat{Category: m.Category})
		}
		s.Categories[j].Volume += m.Volume24h
		s.Categories[j].Count++
	}

	top := append([]Market(nil), markets...)
	SortByVolume(top)
	if len(top) > topVolumeCount {
		top = top[:topVolumeCount]
	}
	s.TopVolume = top

	return s
}
