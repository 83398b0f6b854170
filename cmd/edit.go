package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/incipitdex/constants"
	"github.com/jsphweid/incipitdex/editor"
	"github.com/jsphweid/incipitdex/layout"
	"github.com/jsphweid/incipitdex/logger"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/surface"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	editOut   string
	editDelay time.Duration
)

func init() {
	editCmd.Flags().StringVarP(&editOut, "out", "o", "incipit.pdf", "PDF rewritten as the incipit changes")
	editCmd.Flags().DurationVar(&editDelay, "delay", 150*time.Millisecond, "quiet period before the PDF is rewritten")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit [pae]",
	Short: "Edits an incipit line by line",
	Long: `Reads PAE tokens and :commands from stdin, one per line, and keeps a PDF
of the staff up to date.

  :undo  :clear  :leave  :quit
  :sync <pae>   :click <y>   :hover <y>
  :dur <1|2|4|8|16|32>   :acc <x|b|n|->   :dot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := ""
		if len(args) > 0 {
			start = strings.Join(args, " ")
		}
		r := layout.NewRenderer(renderConfig, surface.NewPDFFile(editOut, constants.GetMusicFont()))
		return edit(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), start, r, editDelay)
	},
}

// parseEditLine turns one input line into a command. pal is the palette the
// :dur, :acc and :dot commands start from.
func parseEditLine(line string, pal editor.Palette) (editor.Command, error) {
	if !strings.HasPrefix(line, ":") {
		return editor.Insert{Token: line}, nil
	}
	name, arg := line[1:], ""
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name, arg = name[:i], strings.TrimSpace(name[i+1:])
	}
	switch name {
	case "undo":
		return editor.Undo{}, nil
	case "clear":
		return editor.Clear{}, nil
	case "leave":
		return editor.Leave{}, nil
	case "sync":
		return editor.Sync{PAE: arg}, nil
	case "click", "hover":
		y, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Errorf(":%s needs a y coordinate, got %q", name, arg)
		}
		if name == "click" {
			return editor.Click{Y: y}, nil
		}
		return editor.Hover{Y: y}, nil
	case "dur":
		d, err := strconv.Atoi(arg)
		if err != nil || !model.ValidDuration(d) {
			return nil, errors.Errorf("bad duration %q", arg)
		}
		pal.Duration = d
		return editor.Select{Palette: pal}, nil
	case "acc":
		switch {
		case arg == "-" || arg == "":
			pal.Accidental = model.NoAccidental
		case len(arg) == 1:
			acc, ok := model.ParseAccidental(arg[0])
			if !ok {
				return nil, errors.Errorf("bad accidental %q", arg)
			}
			pal.Accidental = acc
		default:
			return nil, errors.Errorf("bad accidental %q", arg)
		}
		return editor.Select{Palette: pal}, nil
	case "dot":
		pal.Dotted = !pal.Dotted
		return editor.Select{Palette: pal}, nil
	}
	return nil, errors.Errorf("unknown command :%s", name)
}

func edit(ctx context.Context, in io.Reader, out io.Writer, start string, r *layout.Renderer, delay time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ed := editor.New(editor.FromPAE(start), r.Engine())

	var mu sync.Mutex
	latest := ed.Snapshot()
	disposed := false
	redraw := func() {
		mu.Lock()
		defer mu.Unlock()
		if disposed {
			return
		}
		if err := r.Render(latest.Incipit, latest.Preview); err != nil {
			logger.EDIT.Printf("redraw failed: %v", err)
		}
	}
	debounced := debounce.New(delay)

	bus := editor.NewBus(ed, func(st editor.State) {
		mu.Lock()
		latest = st
		mu.Unlock()
		debounced(redraw)
	})
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx) }()

	redraw()
	pal := editor.DefaultPalette
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			break
		}
		c, err := parseEditLine(line, pal)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if sel, ok := c.(editor.Select); ok {
			pal = sel.Palette
		}
		st, err := bus.Send(ctx, c)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, st.PAE)
	}
	cancel()
	<-done

	// the final state is written even if a debounced redraw is still pending
	redraw()
	mu.Lock()
	disposed = true
	err := r.Dispose()
	mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "closing output")
	}
	return errors.Wrap(scanner.Err(), "reading input")
}
