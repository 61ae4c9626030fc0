package lesson

// Stats summarizes a lesson for listings.
type Stats struct {
	Sections     int
	Blocks       int
	TotalSeconds float64
	ByType       map[ContentType]int
}

// Stats counts sections and blocks and sums the section budgets.
func (c *Content) Stats() Stats {
	stats := Stats{ByType: map[ContentType]int{}}
	if c == nil {
		return stats
	}
	stats.Sections = len(c.Sections)
	for _, section := range c.Sections {
		stats.TotalSeconds += section.DurationSeconds
		stats.Blocks += len(section.Blocks)
		for _, block := range section.Blocks {
			stats.ByType[block.Type]++
		}
	}
	return stats
}
