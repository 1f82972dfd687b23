package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/export"
)

func exportCmd() *cobra.Command {
	var (
		sets    []string
		outDir  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the resolved values of a panel file",
		Long: `Write the export document of a panel file to the configured sink.

The document holds the panel's values, spring modes and resolved tree.
It is written to export.dir, or to S3 when export.s3.bucket is set in
dialkit.json. --out forces a local directory.

Examples:
  dialkit export panels/card.json
  dialkit export panels/card.json --set opacity=0.8 --out ./tuned`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("D180").WithDetail("export needs a panel file")
			}
			return runExport(args[0], sets, outDir, timeout)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a value (path=value), may be repeated")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write into this directory instead of the configured sink")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Upload timeout")

	return cmd
}

func runExport(path string, sets []string, outDir string, timeout time.Duration) error {
	cfg := loadConfigOrDefault()
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	st, id, err := loadPanel(path, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := applySets(st, id, sets); err != nil {
		return err
	}

	p, _ := st.Panel(id)
	doc, err := export.Document(p, st.Presets(id), st.Resolve(id))
	if err != nil {
		return err
	}

	sink, target, err := newSink(cfg, outDir)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Writing " + id + " to " + displayPath(target) + "..."
	if err := s.Color("cyan"); err != nil {
		logger.Debug("spinner color unavailable", "error", err)
	}
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	key := export.Key(id, time.Now())
	err = sink.Put(ctx, key, doc)
	if err != nil {
		s.FinalMSG = color.RedString("✗") + " Export failed\n"
		s.Stop()
		return err
	}
	s.FinalMSG = color.GreenString("✓") + " Exported " + color.YellowString(id) + "\n" +
		color.CyanString("→") + " " + strings.TrimSuffix(displayPath(target), "/") + "/" + key + "\n"
	s.Stop()
	return nil
}
