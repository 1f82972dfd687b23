package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dialkit-go/dialkit/internal/config"
	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/loader"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a dialkit.json with default settings",
		Long: `Create a dialkit.json in dir (default: the working directory).

The file holds the default server, export and logging settings. Add
panel files to it with "dialkit add".

Examples:
  dialkit init
  dialkit init tuning --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			success("Created %s", displayPath(path))
			info("Add a panel with: dialkit add <file>")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing dialkit.json")

	return cmd
}

// runInit writes a default configuration into dir and returns its path.
func runInit(dir string, force bool) (string, error) {
	if config.Exists(dir) && !force {
		return "", errors.New("D126").
			WithDetail(filepath.Join(dir, config.ConfigFileName)).
			WithSuggestion("Use --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.New("D120").Wrap(err)
	}
	path := filepath.Join(dir, config.ConfigFileName)
	if err := config.New().SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}

func addCmd() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a panel file to dialkit.json",
		Long: `Add a panel file to the panels served by "dialkit serve".

The file is parsed first, so a broken panel is reported here rather
than at startup. Its path is stored relative to dialkit.json.

Examples:
  dialkit add panels/card.json
  dialkit add panels/motion.toml --id motion --name "Motion"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("D180").WithDetail("add needs a panel file")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			panel, err := runAdd(cfg, args[0], id, name)
			if err != nil {
				return err
			}
			success("Added %s to %s", panel.File, displayPath(cfg.Path()))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Panel id (default: derived from the name)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (default: the file's base name)")

	return cmd
}

// runAdd appends file to cfg's panels and saves cfg.
func runAdd(cfg *config.Config, file, id, name string) (config.PanelConfig, error) {
	if _, err := loader.LoadFile(file); err != nil {
		return config.PanelConfig{}, err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return config.PanelConfig{}, err
	}
	if dir := cfg.Dir(); dir != "" {
		if absDir, err := filepath.Abs(dir); err == nil {
			if rel, err := filepath.Rel(absDir, abs); err == nil {
				abs = rel
			}
		}
	}

	panel := config.PanelConfig{ID: id, Name: name, File: filepath.ToSlash(abs)}
	cfg.Panels = append(cfg.Panels, panel)
	if err := cfg.Validate(); err != nil {
		cfg.Panels = cfg.Panels[:len(cfg.Panels)-1]
		return config.PanelConfig{}, err
	}
	if err := cfg.Save(); err != nil {
		return config.PanelConfig{}, err
	}
	return panel, nil
}
