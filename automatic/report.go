package automatic

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domino14/dotsboxes/stats"
)

// Report is the YAML form of an experiment.
type Report struct {
	Matchups []ReportEntry `yaml:"matchups"`
}

type ReportEntry struct {
	Name           string               `yaml:"name"`
	Rule           string               `yaml:"rule"`
	Size           int                  `yaml:"size"`
	Limit          int                  `yaml:"depth_limit"`
	Alpha          float64              `yaml:"alpha"`
	Beta           float64              `yaml:"beta"`
	MaxEval        string               `yaml:"max_eval"`
	MinEval        string               `yaml:"min_eval"`
	FirstMover     string               `yaml:"first_mover"`
	Tally          Tally                `yaml:"tally"`
	Summary        stats.OutcomeSummary `yaml:"summary"`
	DistinctFinals int                  `yaml:"distinct_final_positions"`
	ElapsedMillis  int64                `yaml:"elapsed_ms"`
}

func NewReport(results []*MatchupResult) *Report {
	rep := &Report{}
	for _, r := range results {
		m := r.Matchup
		minEval := m.MinFamily.String()
		if m.RandomMin {
			minEval = RandomPlayerName
		}
		rep.Matchups = append(rep.Matchups, ReportEntry{
			Name:           m.Name,
			Rule:           m.Rule.String(),
			Size:           m.Size,
			Limit:          m.Limit,
			Alpha:          m.Alpha,
			Beta:           m.Beta,
			MaxEval:        m.MaxFamily.String(),
			MinEval:        minEval,
			FirstMover:     m.FirstMover.String(),
			Tally:          r.Tally,
			Summary:        r.Summary,
			DistinctFinals: r.DistinctFinals,
			ElapsedMillis:  r.Elapsed.Milliseconds(),
		})
	}
	return rep
}

// WriteReport encodes the results as YAML.
func WriteReport(w io.Writer, results []*MatchupResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(results)); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func ReadReport(r io.Reader) (*Report, error) {
	rep := &Report{}
	if err := yaml.NewDecoder(r).Decode(rep); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return rep, nil
}

// FormatResults renders results as the plain-text table printed by the
// shell.
func FormatResults(results []*MatchupResult) string {
	s := ""
	for _, r := range results {
		s += fmt.Sprintf("%-45s %-24s distinct finals %d\n", r.Matchup.Name, r.Tally.String(), r.DistinctFinals)
		s += fmt.Sprintf("    %v\n", r.Summary)
	}
	return s
}
