package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/codec"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarize a product file per type",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := codec.Load(args[0])
			if err != nil {
				return err
			}

			ix, err := sqlite.Open(products)
			if err != nil {
				return err
			}
			defer ix.Close()

			rows, err := ix.Summary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "no products")
				return nil
			}
			fmt.Fprint(out, summaryTable(rows).render())

			first, last, ok, err := ix.Span()
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "supply dates %s .. %s\n", first.Format(types.DateLayout), last.Format(types.DateLayout))
			}
			return nil
		},
	}
}

func summaryTable(rows []sqlite.KindSummary) *textTable {
	t := newTextTable("Type", "Count", "Amount", "Special", "Metal")
	for _, r := range rows {
		special, metal := "-", "-"
		if r.SpecialValid {
			special = fmt.Sprintf("%d..%d", r.MinSpecial, r.MaxSpecial)
		}
		if r.Kind == types.KindBelt {
			metal = strconv.Itoa(r.Metal)
		}
		t.addRow(r.Kind.String(), strconv.Itoa(r.Count), strconv.Itoa(r.TotalAmount), special, metal)
	}
	return t
}
