package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/codec"
	"github.com/mesh-intelligence/stockroom/internal/command"
	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/manager"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Display the products in a product file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := codec.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "no products")
				return nil
			}
			fmt.Fprint(out, productTable(products).render())
			fmt.Fprintf(out, "%d products\n", len(products))
			return nil
		},
	}
}

func productTable(products []types.Product) *textTable {
	t := newTextTable("#", "Type", "Supply date", "Name", "Amount", "Special")
	for i, p := range products {
		t.addRow(
			strconv.Itoa(i),
			p.Kind().String(),
			p.SupplyDate().Format(types.DateLayout),
			p.Name(),
			strconv.Itoa(p.Amount()),
			p.SpecialText(),
		)
	}
	return t
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file> <type> <dd.mm.yyyy> <name> <amount> <special>",
		Short: "Append a product to a product file",
		Long: "Append one product to a product file, creating the file if needed.\n" +
			"Fields are coerced the same way as an ADD directive.",
		Args: exactArgs(6),
		RunE: a.loggedRunE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			path := args[0]
			p, err := command.ParseProduct(args[1], args[2], args[3], args[4], args[5])
			if err != nil {
				return err
			}

			m, err := loadManager(path, true)
			if err != nil {
				return err
			}
			m.Add(p)
			if err := codec.Save(path, m.Products()); err != nil {
				return err
			}

			line := codec.Format(p)
			logging.NewSink(logger).Log("INFO", fmt.Sprintf("added %s to %s", line, path))
			fmt.Fprintf(cmd.OutOrStdout(), "added #%d: %s\n", m.Len()-1, line)
			return nil
		}),
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file> <index>",
		Short: "Delete the product at a zero-based index",
		Args:  exactArgs(2),
		RunE: a.loggedRunE(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			path := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: index %q is not an integer", errUsage, args[1])
			}

			m, err := loadManager(path, false)
			if err != nil {
				return err
			}
			p, ok := m.Get(index)
			if !ok || !m.DeleteByIndex(index) {
				logging.NewSink(logger).Log("WARNING", fmt.Sprintf("delete %s: no product at index %d", path, index))
				return types.Errorf(types.ErrIndexOutOfRange, "index %d, %s has %d products", index, path, m.Len())
			}
			if err := codec.Save(path, m.Products()); err != nil {
				return err
			}

			line := codec.Format(p)
			logging.NewSink(logger).Log("INFO", fmt.Sprintf("deleted %s from %s", line, path))
			fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d: %s\n", index, line)
			return nil
		}),
	}
}

// loadManager reads path into a new Manager. With allowMissing, a file that
// does not exist yields an empty Manager.
func loadManager(path string, allowMissing bool) (*manager.Manager, error) {
	m := manager.New()
	products, err := codec.Load(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, err
	}
	m.Replace(products)
	return m, nil
}
