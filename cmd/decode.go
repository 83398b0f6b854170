package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsphweid/incipitdex/key"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var decodeJSON bool

func init() {
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "print the decoded incipit as JSON")
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode [pae]",
	Short: "Decodes a PAE incipit",
	Long:  `Decodes a PAE incipit (from args or stdin) and lists its events and any skipped tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inputPAE(cmd, args)
		if err != nil {
			return err
		}
		if decodeJSON {
			return decodeAsJSON(cmd.OutOrStdout(), s)
		}
		decode(cmd.OutOrStdout(), s)
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode [pae]",
	Short: "Normalizes a PAE incipit",
	Long:  `Decodes then re-encodes a PAE incipit, dropping unrecognized tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inputPAE(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pae.FormatIncipit(pae.ParseIncipit(s)))
		return nil
	},
}

func decodeResponse(s string) model.DecodeResponse {
	inc, skipped := pae.ParseIncipitReport(s)
	if skipped == nil {
		skipped = []string{}
	}
	return model.DecodeResponse{Incipit: pae.View(inc), PAE: pae.FormatIncipit(inc), Skipped: skipped}
}

func decodeAsJSON(w io.Writer, s string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(decodeResponse(s)), "encoding incipit")
}

func describeEvent(ev model.Event) string {
	switch e := ev.(type) {
	case model.Note:
		desc := fmt.Sprintf("note %v%d 1/%d", e.Step, e.Octave, e.Duration)
		if e.Accidental != model.NoAccidental {
			desc += " " + e.Accidental.String()
		}
		if e.Dotted {
			desc += " dotted"
		}
		return desc
	case model.Rest:
		return fmt.Sprintf("rest 1/%d", e.Duration)
	case model.Bar:
		return "bar " + e.Kind.String()
	case model.Tie:
		return "tie"
	}
	return "?"
}

func decode(w io.Writer, s string) {
	inc, skipped := pae.ParseIncipitReport(s)
	fmt.Fprintf(w, "clef: %v\n", inc.Clef)
	fmt.Fprintf(w, "key: %d (%s)\n", inc.Key, key.Encode(inc.Key))
	fmt.Fprintf(w, "time: %v\n", inc.Time)
	for i, ev := range inc.Events {
		fmt.Fprintf(w, "%3d  %-6s %s\n", i+1, pae.EncodeEvent(ev), describeEvent(ev))
	}
	for _, tok := range skipped {
		fmt.Fprintf(w, "skipped: %q\n", tok)
	}
}
