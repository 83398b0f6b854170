package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
	"github.com/jsphweid/incipitdex/pitch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [pae]",
	Short: "Reports counts and range of an incipit",
	Long:  `Reports counts of notes, rests, bars and ties, the lowest and highest pitch, and skipped tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inputPAE(cmd, args)
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), collectStats(s))
		return nil
	},
}

type stats struct {
	Notes, Rests, Bars, Ties int
	Lowest, Highest          *pitch.Pitch
	Skipped                  []string
}

func collectStats(s string) stats {
	inc, skipped := pae.ParseIncipitReport(s)
	st := stats{Skipped: skipped}
	for _, ev := range inc.Events {
		switch e := ev.(type) {
		case model.Note:
			st.Notes++
			p := pitch.Pitch{Step: e.Step, Octave: e.Octave}
			if st.Lowest == nil || p.Index() < st.Lowest.Index() {
				low := p
				st.Lowest = &low
			}
			if st.Highest == nil || p.Index() > st.Highest.Index() {
				high := p
				st.Highest = &high
			}
		case model.Rest:
			st.Rests++
		case model.Bar:
			st.Bars++
		case model.Tie:
			st.Ties++
		}
	}
	return st
}

func formatPitch(p *pitch.Pitch) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%v%d", p.Step, p.Octave)
}

func report(w io.Writer, st stats) {
	fmt.Fprintf(w, "notes: %d\n", st.Notes)
	fmt.Fprintf(w, "rests: %d\n", st.Rests)
	fmt.Fprintf(w, "bars: %d\n", st.Bars)
	fmt.Fprintf(w, "ties: %d\n", st.Ties)
	fmt.Fprintf(w, "range: %s - %s\n", formatPitch(st.Lowest), formatPitch(st.Highest))
	fmt.Fprintf(w, "skipped: %d\n", len(st.Skipped))
}
