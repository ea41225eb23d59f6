package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"memegen/internal/editor"
	"memegen/internal/templates"
)

// placeCaptions adds the classic top and bottom captions. Empty captions are
// skipped.
func placeCaptions(s *editor.Session, top, bottom string) error {
	doc := s.Document()
	w, h := float64(doc.Width()), float64(doc.Height())
	if strings.TrimSpace(top) != "" {
		if _, err := s.AddText(top, w/2, h/6); err != nil {
			return fmt.Errorf("top caption: %w", err)
		}
	}
	if strings.TrimSpace(bottom) != "" {
		if _, err := s.AddText(bottom, w/2, h*5/6); err != nil {
			return fmt.Errorf("bottom caption: %w", err)
		}
	}
	return nil
}

type renderOptions struct {
	top      string
	bottom   string
	width    int
	height   int
	template string
	fontSize int
	outline  bool
	output   string
}

// buildMeme creates a session sized by the template or explicit dimensions
// and places the captions.
func buildMeme(cfg *Config, catalog *templates.Catalog, opts renderOptions) (*editor.Session, error) {
	sessionOpts := cfg.SessionOptions()
	if opts.width > 0 {
		sessionOpts.Width = opts.width
	}
	if opts.height > 0 {
		sessionOpts.Height = opts.height
	}
	if err := editor.ValidateSize(sessionOpts.Width, sessionOpts.Height); err != nil {
		return nil, err
	}
	if opts.template != "" {
		tmpl, err := catalog.Use(opts.template)
		if err != nil {
			return nil, err
		}
		sessionOpts.Width, sessionOpts.Height, err = tmpl.CanvasSize(sessionOpts.Width)
		if err != nil {
			return nil, err
		}
	}

	s, err := editor.NewSession(sessionOpts)
	if err != nil {
		return nil, err
	}
	if err := placeCaptions(s, opts.top, opts.bottom); err != nil {
		return nil, err
	}
	patch := editor.StylePatch{OutlineEnabled: editor.Ptr(opts.outline)}
	if opts.fontSize > 0 {
		patch.FontSize = editor.Ptr(opts.fontSize)
	}
	for _, el := range s.Document().Elements() {
		if err := s.Document().Select(el.ID); err != nil {
			return nil, err
		}
		if err := s.ApplyStyle(patch); err != nil {
			return nil, err
		}
	}
	s.Document().ClearSelection()
	return s, nil
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a captioned meme to PNG or PDF without the editor",
		Example: `  memegen render --top "ONE DOES NOT SIMPLY" --bottom "RENDER HEADLESS" -o meme.png
  memegen render --template this-is-fine --bottom "everything is fine" -o fine.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if strings.TrimSpace(opts.top) == "" && strings.TrimSpace(opts.bottom) == "" {
				return fmt.Errorf("nothing to render: set --top or --bottom")
			}
			s, err := buildMeme(cfg, templates.NewCatalog(), opts)
			if err != nil {
				return err
			}
			path, err := cfg.GetSavePath(opts.output)
			if err != nil {
				return err
			}
			if err := exportFile(s, path); err != nil {
				return err
			}
			absPath, _ := filepath.Abs(path)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", absPath)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.top, "top", "", "top caption")
	flags.StringVar(&opts.bottom, "bottom", "", "bottom caption")
	flags.IntVar(&opts.width, "width", 0, "canvas width (default from config)")
	flags.IntVar(&opts.height, "height", 0, "canvas height (default from config)")
	flags.StringVar(&opts.template, "template", "", "template id, sets the aspect ratio")
	flags.IntVar(&opts.fontSize, "size", 0, "font size in pixels")
	flags.BoolVar(&opts.outline, "outline", true, "outline captions")
	flags.StringVarP(&opts.output, "output", "o", "meme.png", "output file (.png or .pdf)")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	var category, search string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := templates.NewCatalog().Search(search, templates.Category(category))
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tRATIO\tCATEGORY\tUSES")
			for _, t := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.AspectRatio, t.Category, templates.FormatUsage(t))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category (popular, reactions, story, comparison)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name or description")
	return cmd
}
