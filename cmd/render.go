package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jsphweid/incipitdex/constants"
	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jsphweid/incipitdex/layout"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
	"github.com/jsphweid/incipitdex/surface"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOut    string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "pdf", "output format: pdf or json")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [pae]",
	Short: "Renders an incipit to PDF or draw commands",
	Long:  `Lays out a PAE incipit on a single staff and writes it as a PDF page or as JSON draw commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inputPAE(cmd, args)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if renderOut != "" {
			f, err := os.Create(renderOut)
			if err != nil {
				return errors.Wrapf(err, "creating %s", renderOut)
			}
			defer f.Close()
			w = f
		}
		return render(w, renderFormat, renderConfig, pae.ParseIncipit(s), nil)
	},
}

type RenderResponse struct {
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Commands []glyph.Command `json:"commands"`
}

func renderResponse(cfg layout.Config, cmds []glyph.Command) RenderResponse {
	if cmds == nil {
		cmds = []glyph.Command{}
	}
	return RenderResponse{Width: cfg.Width, Height: cfg.Height, Commands: cmds}
}

// render draws one frame through a Renderer onto the surface for format.
func render(w io.Writer, format string, cfg layout.Config, inc model.Incipit, preview *model.Note) error {
	switch format {
	case "pdf":
		r := layout.NewRenderer(cfg, surface.NewPDF(w, constants.GetMusicFont()))
		defer r.Dispose()
		return r.Render(inc, preview)
	case "json":
		rec := surface.NewRecorder()
		r := layout.NewRenderer(cfg, rec)
		defer r.Dispose()
		if err := r.Render(inc, preview); err != nil {
			return err
		}
		return errors.Wrap(json.NewEncoder(w).Encode(renderResponse(cfg, rec.Commands())), "encoding commands")
	}
	return errors.Errorf("unknown format %q", format)
}
