package cli

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treesvg/pkg/style"
)

// styleCommand creates the style command, which validates descriptors.
func (c *CLI) styleCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "style [descriptor...]",
		Short: "Validate style descriptors and show their canonical colors",
		Example: `  treesvg style red@10 '#00f@3' 'rgb(100%,0%,0%)@7'
  treesvg style --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				fmt.Fprintln(out, strings.Join(style.Names(), "\n"))
				return nil
			}
			if len(args) == 0 {
				return cmd.Usage()
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(styleDim).
				Headers("DESCRIPTOR", "HEX", "RGB", "SIZE", "")
			var errs []error
			for _, arg := range args {
				s, err := style.Parse(arg)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(s.Color.Hex())).Render("    ")
				t.Row(s.String(), s.Color.Hex(), s.Color.RGB(), strconv.FormatFloat(s.Size, 'f', -1, 64), swatch)
			}
			if len(errs) < len(args) {
				fmt.Fprintln(out, styleTitle.Render("Styles"))
				fmt.Fprintln(out, t.Render())
			}
			return stderrors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list the named colors")

	return cmd
}
