package cmd

import (
	"fmt"

	"github.com/go-prism/prism/cmd/prism/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show resolved project configuration",
		Long: `Show the resolved configuration of the Prism project in the
enclosing Go module: application metadata and the main window defaults,
after merging prism.yaml over the built-in defaults.`,
		Usage: "prism status",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	fmt.Printf("Project: %s (%s)\n", cfg.AppName, cfg.AppID)
	fmt.Printf("Module:  %s\n", cfg.ModulePath)
	fmt.Printf("Root:    %s\n", cfg.Root)
	fmt.Println()
	fmt.Println("Window:")
	fmt.Printf("  title:      %s\n", cfg.WindowTitle)
	fmt.Printf("  size:       %g x %g\n", cfg.WindowWidth, cfg.WindowHeight)
	fmt.Printf("  resizable:  %v\n", cfg.Resizable)
	fmt.Printf("  background: #%08X\n", cfg.Background)

	return nil
}
