package cmd

import (
	"io"
	"strings"

	"github.com/jsphweid/incipitdex/layout"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var renderConfig = layout.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "incipitdex",
	Short: "Plaine & Easie incipit toolkit",
	Long: `Decodes, renders, edits and searches musical incipits written in
Plaine & Easie code.`,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&renderConfig.LineGap, "line-gap", renderConfig.LineGap, "distance between staff lines")
	flags.Float64Var(&renderConfig.NoteScale, "note-scale", renderConfig.NoteScale, "size of note glyphs relative to the line gap")
	flags.Float64Var(&renderConfig.Width, "width", renderConfig.Width, "staff width")
	flags.Float64Var(&renderConfig.Height, "height", renderConfig.Height, "staff height")
	flags.BoolVar(&renderConfig.RestGlyphs, "rest-glyphs", renderConfig.RestGlyphs, "draw a symbol for rests")
	flags.IntVar(&renderConfig.MaxFlags, "max-flags", renderConfig.MaxFlags, "maximum flags drawn on a stem")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// readPAE joins the args, or reads stdin when there are none.
func readPAE(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	return strings.TrimSpace(string(b)), nil
}

func inputPAE(cmd *cobra.Command, args []string) (string, error) {
	return readPAE(args, cmd.InOrStdin())
}
