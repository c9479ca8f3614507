package simulation

// FrameStats summarizes the ray population after a frame
type FrameStats struct {
	Frame    int // completed Update calls
	Total    int // population size
	Live     int // rays still propagating
	Disabled int // rays captured or escaped
}

// Stats counts live and disabled rays in the current population
func (s *Simulation) Stats() FrameStats {
	stats := FrameStats{Frame: s.frame, Total: len(s.rays)}
	for _, ray := range s.rays {
		if ray.Disabled {
			stats.Disabled++
		} else {
			stats.Live++
		}
	}
	return stats
}
