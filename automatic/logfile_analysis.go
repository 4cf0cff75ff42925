package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/dotsboxes/stats"
)

// AnalyzeLogFile analyzes a game log written through RunOptions.GameLog
// and spits out a bunch of statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return AnalyzeGameLog(file)
}

func AnalyzeGameLog(in io.Reader) (string, error) {
	r := csv.NewReader(in)

	// Record looks like:
	// gameID,maxName,minName,maxBoxes,minBoxes,firstMover

	maxStats := &stats.Statistic{}
	minStats := &stats.Statistic{}
	margin := &stats.Statistic{}

	var tally Tally
	firstMoverWins := 0.0
	gamesPlayed := 0
	var maxName, minName string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			// header line; logs of several matchups may be concatenated
			continue
		}
		if len(record) != 6 {
			return "", fmt.Errorf("bad record %v", record)
		}
		maxName, minName = record[1], record[2]
		maxBoxes, err := strconv.Atoi(record[3])
		if err != nil {
			return "", err
		}
		minBoxes, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		maxStats.Push(float64(maxBoxes))
		minStats.Push(float64(minBoxes))
		margin.Push(float64(maxBoxes - minBoxes))
		switch {
		case maxBoxes > minBoxes:
			tally.Add(MaxWin)
			if record[5] == "max" {
				firstMoverWins++
			}
		case maxBoxes < minBoxes:
			tally.Add(MinWin)
			if record[5] == "min" {
				firstMoverWins++
			}
		default:
			tally.Add(Tie)
			firstMoverWins += 0.5
		}
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "Games played: 0\n", nil
	}

	// build stats string
	s := fmt.Sprintf("Games played: %d\n", gamesPlayed)
	s += fmt.Sprintf("Max (%v) vs Min (%v): %v\n", maxName, minName, tally)
	s += fmt.Sprintf("Player who went first wins: %.1f (%.3f%%)\n",
		firstMoverWins, 100.0*firstMoverWins/float64(gamesPlayed))
	s += fmt.Sprintf("Max Mean Boxes: %.6f  Stdev: %.6f\n", maxStats.Mean(), maxStats.Stdev())
	s += fmt.Sprintf("Min Mean Boxes: %.6f  Stdev: %.6f\n", minStats.Mean(), minStats.Stdev())
	lo, hi := margin.ConfidenceInterval(95)
	s += fmt.Sprintf("Mean Margin: %.6f  95%% CI: [%.6f, %.6f]\n", margin.Mean(), lo, hi)
	return s, nil
}
