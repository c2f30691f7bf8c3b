package bench

import (
	"github.com/hupe1980/mcvol/chart"
)

// SpeedSeries converts a speed sweep into an elapsed-seconds-per-workers line.
func SpeedSeries(name string, rows []SpeedRow) chart.Series {
	s := chart.Series{Name: name}
	for _, r := range rows {
		s.X = append(s.X, float64(r.Workers))
		s.Y = append(s.Y, r.Elapsed.Seconds())
	}
	return s
}

// FibSeries converts a Fibonacci sweep into one elapsed-seconds-per-n line
// per strategy, in first-seen order.
func FibSeries(rows []FibRow) []chart.Series {
	var out []chart.Series
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Strategy]
		if !ok {
			i = len(out)
			index[r.Strategy] = i
			out = append(out, chart.Series{Name: r.Strategy})
		}
		out[i].X = append(out[i].X, float64(r.N))
		out[i].Y = append(out[i].Y, r.Elapsed.Seconds())
	}
	return out
}
