package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-prism/prism/cmd/prism/internal/config"
	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
	"github.com/go-prism/prism/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Render one headless frame and print stats",
		Long: `Render one frame of a built-in sample interface without a window
or renderer, using the project's configured surface size, and print the
resulting frame statistics. Useful for sanity-checking an installation.

An optional argument overrides the logical item count of the sample's
virtual list (default 10000000000).`,
		Usage: "prism preview [items-count]",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	itemsCount := uint64(10_000_000_000)
	if len(args) > 0 {
		parsed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid items-count %q: %w", args[0], err)
		}
		itemsCount = parsed
	}

	width, height := float64(config.DefaultWindowWidth), float64(config.DefaultWindowHeight)
	background := graphics.Color(config.DefaultBackground)
	if root, err := config.FindProjectRoot(); err == nil {
		if cfg, err := config.Resolve(root); err == nil {
			width, height = cfg.WindowWidth, cfg.WindowHeight
			background = graphics.Color(cfg.Background)
		}
	}

	pipeline := core.NewPipeline(core.PipelineOptions{Background: background})
	pipeline.SetViewport(graphics.Size{Width: width, Height: height})

	var info widgets.ScrollInfo
	list, err := pipeline.RunFrame(func(ctx *core.BuildContext) {
		widgets.Column().Build(ctx, func(ctx *core.BuildContext) {
			widgets.Box().
				Height(layout.Fixed(48)).
				Width(layout.Fill(1)).
				Background(graphics.RGB(0x33, 0x66, 0xCC)).
				Build(ctx)
			info = widgets.VirtualList().
				ItemExtent(32).
				ItemsCount(itemsCount).
				Build(ctx, func(ctx *core.BuildContext, index uint64) {
					shade := uint8(0xE0)
					if index%2 == 1 {
						shade = 0xF4
					}
					widgets.Box().
						Width(layout.Fill(1)).
						Height(layout.Fill(1)).
						Background(graphics.RGB(shade, shade, shade)).
						Build(ctx)
				})
		})
	})
	if err != nil {
		return fmt.Errorf("frame failed: %w", err)
	}

	fmt.Printf("Surface:       %g x %g\n", width, height)
	fmt.Printf("Display ops:   %d\n", list.OpCount())
	fmt.Printf("Items total:   %d\n", itemsCount)
	fmt.Printf("Items built:   %d [%d, %d)\n", info.Range.Count(), info.Range.First, info.Range.Last)
	fmt.Printf("Widget states: %d\n", pipeline.Store().Len())
	return nil
}
