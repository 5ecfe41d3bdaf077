package mps

// stats: the summary collaborator. Statistics are computed from a parsed
// model on demand; the bound-type tallies are the accumulator carried on the
// Problem during parsing, so they reflect what the file declared rather than
// what conforming filled in.

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Statistics summarizes a parsed model.
type Statistics struct {
	Name        string        // problem name
	NumRows     int           // rows declared, objective included
	NumCols     int           // columns in the column universe
	NumElements int           // coefficient matrix entries present
	NumRHS      int           // RHS entries present
	NumBounds   int           // columns carrying a bound entry
	NumRanges   int           // ranged rows
	RowsBySense map[Sense]int // row count per constraint type
	Tally       BoundTally    // bound-type usage from the BOUNDS section
}

// GetStatistics populates stats from the model. In case of failure, it
// returns an error.
func GetStatistics(p *Problem, stats *Statistics) error {
	if p == nil {
		return errors.New("GetStatistics received a nil model")
	}

	stats.Name = p.Name
	stats.NumRows = len(p.Rows)
	stats.NumCols = len(p.Columns())
	stats.NumRHS = len(p.RHS)
	stats.NumBounds = len(p.Bounds)
	stats.NumRanges = len(p.Ranges)
	stats.Tally = p.Tally

	stats.NumElements = 0
	for _, entries := range p.Coef {
		stats.NumElements += len(entries)
	}

	stats.RowsBySense = make(map[Sense]int, 4)
	for _, row := range p.Rows {
		stats.RowsBySense[row.Sense]++
	}
	return nil
}

// PrintStatistics writes the summary in a formatted manner onto w.
func PrintStatistics(w io.Writer, stats Statistics) error {
	fmt.Fprintf(w, "Problem name:      %s\n", stats.Name)
	fmt.Fprintf(w, "Number of columns: %d\n", stats.NumCols)
	fmt.Fprintf(w, "Number of rows:    %d\n", stats.NumRows)

	senses := make([]string, 0, len(stats.RowsBySense))
	for s := range stats.RowsBySense {
		senses = append(senses, string(s))
	}
	sort.Strings(senses)
	for _, s := range senses {
		fmt.Fprintf(w, "  - %s: %d\n", s, stats.RowsBySense[Sense(s)])
	}

	fmt.Fprintf(w, "Number of elements: %d\n", stats.NumElements)
	fmt.Fprintf(w, "Number of ranges:   %d\n", stats.NumRanges)
	fmt.Fprintf(w, "Number of bounds:   %d\n", stats.NumBounds)
	fmt.Fprintf(w, "Number of RHS:      %d\n", stats.NumRHS)
	fmt.Fprintf(w, "Number of LO bounds: %d\n", stats.Tally.LO)
	fmt.Fprintf(w, "Number of UP bounds: %d\n", stats.Tally.UP)
	fmt.Fprintf(w, "Number of FX bounds: %d\n", stats.Tally.FX)
	fmt.Fprintf(w, "Number of FR bounds: %d\n", stats.Tally.FR)
	fmt.Fprintf(w, "Number of MI bounds: %d\n", stats.Tally.MI)
	fmt.Fprintf(w, "Number of PL bounds: %d\n", stats.Tally.PL)
	return nil
}
