package history

import "fmt"

// chartWindow is how many recent scans the confidence chart shows.
const chartWindow = 7

// ChartPoint is one sample of the confidence time series. Field names match
// what the dashboard chart binds to.
type ChartPoint struct {
	Label      string `json:"name"`
	Confidence int    `json:"accuracy"`
}

// ChartSeries projects the log onto a small time series: the chartWindow most
// recent entries, reversed to chronological order, labeled "Scan 1".."Scan n".
// Pure function of the current log; nothing is persisted.
func (s *Store) ChartSeries() []ChartPoint {
	s.mu.Lock()
	recent := s.entries
	if len(recent) > chartWindow {
		recent = recent[:chartWindow]
	}
	points := make([]ChartPoint, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		points = append(points, ChartPoint{
			Label:      fmt.Sprintf("Scan %d", len(recent)-i),
			Confidence: recent[i].Confidence,
		})
	}
	s.mu.Unlock()
	return points
}
