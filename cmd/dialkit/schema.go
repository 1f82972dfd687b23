package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/loader"
)

func schemaCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "Print the controls of a panel file",
		Long: `Print the control tree derived from a panel file.

Each entry shows its label, control kind and default. Color controls
are previewed with a swatch when the terminal supports it.

Examples:
  dialkit schema panels/card.json
  dialkit schema panels/motion.toml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("D180").WithDetail("schema needs a panel file")
			}
			tree, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			schema := control.Build(tree)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(schema.Root)
			}
			printNodes(os.Stdout, schema.Root.Children, 0)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the schema as JSON")

	return cmd
}

// printNodes writes one line per node, indenting children.
func printNodes(w io.Writer, nodes []*control.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n.Kind == control.KindGroup {
			label := color.New(color.Bold).Sprint(n.Label)
			if n.Collapsed {
				label += color.HiBlackString(" (collapsed)")
			}
			fmt.Fprintf(w, "%s%s\n", indent, label)
			printNodes(w, n.Children, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s%s %s %s\n", indent, n.Label, color.CyanString(string(n.Kind)), describe(n))
	}
}

// describe summarizes the default and range of a leaf.
func describe(n *control.Node) string {
	switch n.Kind {
	case control.KindRange:
		if n.Range != nil {
			return fmt.Sprintf("%v %s", n.Default,
				color.HiBlackString("[%g..%g step %g]", n.Range.Min, n.Range.Max, n.Range.Step))
		}
	case control.KindColor:
		s, _ := n.Default.(string)
		return swatch(s) + " " + s
	case control.KindChoice:
		values := make([]string, len(n.Options))
		for i, o := range n.Options {
			values[i] = o.Value
		}
		return fmt.Sprintf("%v %s", n.Default, color.HiBlackString("{%s}", strings.Join(values, ", ")))
	case control.KindText:
		return fmt.Sprintf("%q", n.Default)
	case control.KindAction:
		return ""
	}
	if n.Default == nil {
		return ""
	}
	data, err := json.Marshal(n.Default)
	if err != nil {
		return fmt.Sprint(n.Default)
	}
	return string(data)
}

// swatch renders a color as a two-cell block, or "" when the color does
// not parse or colors are disabled.
func swatch(s string) string {
	c, _, err := control.ParseColor(s)
	if err != nil || color.NoColor {
		return ""
	}
	r, g, b := c.RGB255()
	return color.BgRGB(int(r), int(g), int(b)).Sprint("  ")
}
