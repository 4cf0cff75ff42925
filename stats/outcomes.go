package stats

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

// OutcomeSummary describes a set of game results by their utility:
// +1 for a Max win, 0 for a tie, -1 for a Min win.
type OutcomeSummary struct {
	Games   int     `yaml:"games"`
	Mean    float64 `yaml:"mean"`
	Stdev   float64 `yaml:"stdev"`
	CILow   float64 `yaml:"ci95_low"`
	CIHigh  float64 `yaml:"ci95_high"`
	MaxRate float64 `yaml:"max_win_rate"`
}

func utilities(minWins, ties, maxWins int) []float64 {
	u := make([]float64, 0, minWins+ties+maxWins)
	for i := 0; i < minWins; i++ {
		u = append(u, -1)
	}
	for i := 0; i < ties; i++ {
		u = append(u, 0)
	}
	for i := 0; i < maxWins; i++ {
		u = append(u, 1)
	}
	return u
}

// SummarizeOutcomes computes the mean utility and its 95% confidence
// interval. Ties count as half a win for the max win rate.
func SummarizeOutcomes(minWins, ties, maxWins int) OutcomeSummary {
	s := &Statistic{}
	for _, u := range utilities(minWins, ties, maxWins) {
		s.Push(u)
	}
	lo, hi := s.ConfidenceInterval(95)
	sum := OutcomeSummary{
		Games:  s.Iterations(),
		Mean:   s.Mean(),
		Stdev:  s.Stdev(),
		CILow:  lo,
		CIHigh: hi,
	}
	if sum.Games > 0 {
		sum.MaxRate = (float64(maxWins) + float64(ties)/2) / float64(sum.Games)
	}
	return sum
}

func (o OutcomeSummary) String() string {
	return fmt.Sprintf("%d games, mean %.3f (95%% CI %.3f to %.3f), max win rate %.1f%%",
		o.Games, o.Mean, o.CILow, o.CIHigh, 100*o.MaxRate)
}

// PlotOutcomes prints a three-bucket histogram of game utilities.
func PlotOutcomes(w io.Writer, title string, minWins, ties, maxWins, width int) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	u := utilities(minWins, ties, maxWins)
	if len(u) == 0 {
		_, err := fmt.Fprintln(w, "(no games)")
		return err
	}
	h := histogram.Hist(3, u)
	return histogram.Fprint(w, h, histogram.Linear(width))
}
