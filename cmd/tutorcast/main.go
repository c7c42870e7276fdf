package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tutorcast/internal/bootstrap"
	mediadto "tutorcast/internal/modules/media/dto"
	"tutorcast/internal/platform/config"
	"tutorcast/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	rootPath string
	logMode  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tutorcast",
		Short:         "Guided narration player for worksheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.rootPath, "root", ".", "content root holding worksheets, documents and media")
	root.PersistentFlags().StringVar(&opts.logMode, "log", "", "log mode override: dev|prod|quiet")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newWorksheetCmd(opts))
	root.AddCommand(newPageCmd(opts))
	root.AddCommand(newDRMCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newMediaCmd(opts))
	return root
}

// loadApp wires the application. Log lines go to logFile when it is set.
func loadApp(ctx context.Context, opts *rootOptions, logFile bool) (*bootstrap.App, func(), error) {
	cfg, err := config.New(opts.rootPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logMode != "" {
		cfg.LogMode = opts.logMode
	}
	var outputs []string
	if logFile {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		outputs = append(outputs, filepath.Join(cfg.DataDir, "tutorcast.log"))
	}
	log, err := logger.New(cfg.LogMode, outputs...)
	if err != nil {
		return nil, nil, fmt.Errorf("new logger: %w", err)
	}
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, nil, err
	}
	cleanup := func() {
		if err := app.Close(); err != nil {
			log.Warn("close app", "error", err)
		}
		log.Sync()
	}
	return app, cleanup, nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "tui [worksheet-id]",
		Short: "Run the terminal player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer cleanup()
			worksheetID := ""
			if len(args) == 1 {
				worksheetID = args[0]
			}
			return bootstrap.RunTUI(cmd.Context(), app, worksheetID, page)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to open with a worksheet id")
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the playback HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			if addr == "" {
				addr = app.Config.HTTPAddr
			}
			return bootstrap.RunHTTP(cmd.Context(), app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to http_addr from config)")
	return cmd
}

func newWorksheetCmd(opts *rootOptions) *cobra.Command {
	worksheet := &cobra.Command{Use: "worksheet", Short: "Inspect worksheet content"}

	worksheet.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known worksheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			ids, err := app.WorksheetCLI.ListWorksheets(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no worksheets")
				return nil
			}
			for _, id := range ids {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	var page int
	var asJSON bool
	show := &cobra.Command{
		Use:   "show <worksheet-id>",
		Short: "Show the content units of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.WorksheetCLI.LoadPage(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, out)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s page=%d mode=%s protected=%t units=%d\n",
				out.WorksheetID, out.Page, out.Mode, out.DRMProtected, len(out.Units))
			for _, u := range out.Units {
				marker := " "
				if u.Clickable {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%d steps\n", marker, u.ID, u.Direction, u.Title, len(u.Paragraphs))
			}
			return nil
		},
	}
	show.Flags().IntVar(&page, "page", 1, "page number")
	show.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	worksheet.AddCommand(show)
	return worksheet
}

func newPageCmd(opts *rootOptions) *cobra.Command {
	pageCmd := &cobra.Command{Use: "page", Short: "Read worksheet documents"}

	var page int
	show := &cobra.Command{
		Use:   "show <worksheet-id>",
		Short: "Print the text and size of a document page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.DocumentCLI.OpenPage(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d (%.0fx%.0f pt)\n\n%s\n", out.Page, out.TotalPages, out.Width, out.Height, out.Text)
			return nil
		},
	}
	show.Flags().IntVar(&page, "page", 1, "page number")
	pageCmd.AddCommand(show)
	return pageCmd
}

func newDRMCmd(opts *rootOptions) *cobra.Command {
	drm := &cobra.Command{Use: "drm", Short: "Protected page layout"}

	var page int
	var width, height float64
	layout := &cobra.Command{
		Use:   "layout <worksheet-id>",
		Short: "Compute clear windows for a container size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.DRMCLI.Layout(cmd.Context(), args[0], page, width, height)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	layout.Flags().IntVar(&page, "page", 1, "page number")
	layout.Flags().Float64Var(&width, "width", 1024, "container width in pixels")
	layout.Flags().Float64Var(&height, "height", 0, "container height in pixels (0 fits width)")
	drm.AddCommand(layout)
	return drm
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Saved playback progress"}

	var page int
	show := &cobra.Command{
		Use:   "show <worksheet-id>",
		Short: "Show the saved record of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.ProgressCLI.Show(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	show.Flags().IntVar(&page, "page", 1, "page number")
	progress.AddCommand(show)

	progress.AddCommand(&cobra.Command{
		Use:   "tutor [name]",
		Short: "Show or change the tutor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			if len(args) == 1 {
				if err := app.ProgressCLI.SetTutor(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			tutor, err := app.ProgressCLI.Tutor(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tutor)
			return nil
		},
	})
	return progress
}

func newMediaCmd(opts *rootOptions) *cobra.Command {
	media := &cobra.Command{Use: "media", Short: "Narration assets"}

	var (
		page      int
		kind      string
		unitName  string
		unitIndex int
		step      int
	)
	ref := func(worksheetID string) mediadto.NarrationRef {
		return mediadto.NarrationRef{
			WorksheetID: worksheetID,
			Kind:        strings.ToLower(kind),
			UnitName:    unitName,
			Page:        page,
			UnitIndex:   unitIndex,
		}
	}

	probe := &cobra.Command{
		Use:   "probe <worksheet-id>",
		Short: "Check whether a unit's narration exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.MediaCLI.Probe(cmd.Context(), ref(args[0]))
			if err != nil {
				return err
			}
			status := "available"
			if !out.Available {
				status = "unavailable: " + out.Reason
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out.AssetPath, status)
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path <worksheet-id>",
		Short: "Print the audio path of one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			p, err := app.MediaCLI.AudioPath(ref(args[0]), step)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	path.Flags().IntVar(&step, "step", 0, "zero-based step")

	for _, c := range []*cobra.Command{probe, path} {
		c.Flags().IntVar(&page, "page", 1, "page number")
		c.Flags().StringVar(&kind, "kind", "guidance", "unit kind: guidance|region")
		c.Flags().StringVar(&unitName, "name", "", "region name")
		c.Flags().IntVar(&unitIndex, "index", 0, "zero-based guidance index on the page")
	}
	media.AddCommand(probe, path)

	media.AddCommand(&cobra.Command{
		Use:   "tutor-video [tutor]",
		Short: "Print the looping video path of a tutor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			tutor := ""
			if len(args) == 1 {
				tutor = args[0]
			} else if tutor, err = app.ProgressCLI.Tutor(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.MediaCLI.TutorVideoPath(tutor))
			return nil
		},
	})
	return media
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
