package cmd

import (
	"fmt"

	"github.com/jsphweid/incipitdex/key"
	"github.com/jsphweid/incipitdex/midi"
	"github.com/jsphweid/incipitdex/pae"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	midiOut     string
	importOpts  = midi.DefaultImportOptions
	importKey   string
	importClef  string
	importMeter string
)

func init() {
	midiExportCmd.Flags().StringVarP(&midiOut, "out", "o", "incipit.mid", "MIDI file to write")

	flags := midiImportCmd.Flags()
	flags.Uint64Var(&importOpts.TicksOffset, "offset", 0, "skip notes starting before this tick")
	flags.IntVarP(&importOpts.MaxNotes, "max-notes", "n", importOpts.MaxNotes, "keep at most this many notes")
	flags.StringVar(&importKey, "key", "$x", "key signature used for spelling, e.g. $bBE")
	flags.StringVar(&importClef, "clef", "%G-2", "clef of the resulting incipit")
	flags.StringVar(&importMeter, "time", "@4/4", "time signature of the resulting incipit")

	midiCmd.AddCommand(midiExportCmd)
	midiCmd.AddCommand(midiImportCmd)
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "Converts between incipits and standard MIDI files",
}

var midiExportCmd = &cobra.Command{
	Use:   "export [pae]",
	Short: "Writes an incipit as a MIDI file",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inputPAE(cmd, args)
		if err != nil {
			return err
		}
		if err := midi.WriteFile(midiOut, pae.ParseIncipit(s)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", midiOut)
		return nil
	},
}

var midiImportCmd = &cobra.Command{
	Use:   "import <file.mid>",
	Short: "Reads the opening phrase of a MIDI file as an incipit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		opts := importOpts
		opts.Key = key.Decode(importKey)
		opts.Clef = pae.ParseClef(importClef)
		opts.Time = pae.ParseTime(importMeter)
		inc, err := midi.Import(s, opts)
		if err != nil {
			return errors.Wrapf(err, "importing %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), pae.FormatIncipit(inc))
		return nil
	},
}
