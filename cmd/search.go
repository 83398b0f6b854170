package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/incipitdex/catalog"
	"github.com/jsphweid/incipitdex/constants"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	searchMode      string
	searchThreshold string
	searchWindow    string
	searchURL       string
)

func init() {
	flags := searchCmd.Flags()
	flags.StringVarP(&searchMode, "mode", "m", string(catalog.Similar), "similar or substring")
	flags.StringVar(&searchThreshold, "threshold", "", "similarity threshold for similar mode")
	flags.StringVar(&searchWindow, "window", "", "window size for substring mode")
	flags.StringVar(&searchURL, "url", "", "search service base URL (default $CATALOG_URL)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [pae]",
	Short: "Searches the catalog for works matching an incipit",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inputPAE(cmd, args)
		if err != nil {
			return err
		}
		base := searchURL
		if base == "" {
			base = constants.GetCatalogURL()
		}
		if base == "" {
			return errors.New("no search service configured, set CATALOG_URL or --url")
		}
		q := catalog.Query{
			PAE:       s,
			Mode:      catalog.Mode(strings.ToLower(searchMode)),
			Threshold: catalog.ParseThreshold(searchThreshold),
			Window:    catalog.ParseWindow(searchWindow),
		}
		works, err := catalog.NewHTTPSearcher(base).Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		for _, w := range works {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", w.ID, w.Title, w.PAE)
		}
		return nil
	},
}
