package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-prism/prism/cmd/prism/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Scaffold a Prism app in the current module",
		Long: `Scaffold a Prism application in the enclosing Go module.

Writes prism.yaml with the main window defaults and, unless one already
exists, a main.go with a minimal root builder. Existing files are never
overwritten.`,
		Usage: "prism init",
		Run:   runInit,
	})
}

const configTemplate = `app:
  name: %s

window:
  title: %s
  width: 1024
  height: 768
  resizable: true
  background: "#FFFFFF"
`

const mainTemplate = `package main

import (
	"context"
	"log"

	"github.com/go-prism/prism/pkg/app"
	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
	"github.com/go-prism/prism/pkg/widgets"
)

func main() {
	a := app.New(app.Options{})
	a.NewWindow(app.WindowDescriptor{
		Title:           %q,
		Width:           1024,
		Height:          768,
		Resizable:       true,
		BackgroundColor: graphics.ColorWhite,
	}, newRenderer(), root)

	if err := a.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func root(ctx *core.BuildContext) {
	widgets.Column().Spacing(8).Build(ctx, func(ctx *core.BuildContext) {
		widgets.Box().
			Height(layout.Fixed(48)).
			Width(layout.Fill(1)).
			Background(graphics.RGB(0x33, 0x66, 0xCC)).
			Build(ctx)
		widgets.Spacer().Build(ctx)
	})
}
`

func runInit(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	configPath := filepath.Join(root, "prism.yaml")
	if err := writeIfAbsent(configPath, fmt.Sprintf(configTemplate, cfg.AppName, cfg.AppName)); err != nil {
		return err
	}

	mainPath := filepath.Join(root, "main.go")
	if err := writeIfAbsent(mainPath, fmt.Sprintf(mainTemplate, cfg.AppName)); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", cfg.AppName)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  - implement newRenderer() against your windowing backend")
	fmt.Println("  - go run .")
	return nil
}

func writeIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Skipping %s (already exists)\n", filepath.Base(path))
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Created %s\n", filepath.Base(path))
	return nil
}
