package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialkit-go/dialkit/internal/errors"
)

func resolveCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the resolved values of a panel file",
		Long: `Print the values an application would read from a panel file.

Values can be overridden with --set before resolving. Overrides are
coerced like values sent by a presentation client: ranges are clamped,
colors normalized and unknown choices rejected.

Examples:
  dialkit resolve panels/card.json
  dialkit resolve panels/card.json --set opacity=0.4 --set motion.visible=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("D180").WithDetail("resolve needs a panel file")
			}
			return runResolve(os.Stdout, args[0], sets)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a value (path=value), may be repeated")

	return cmd
}

func runResolve(w io.Writer, path string, sets []string) error {
	logger, err := newLogger(loadConfigOrDefault(), os.Stderr)
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

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(st.Resolve(id))
}
