package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/procure/internal/catalog"
	"github.com/Veraticus/procure/internal/cli"
	"github.com/Veraticus/procure/internal/model"
	"github.com/spf13/cobra"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List catalog items without the interactive UI",
		Long: `Fetch the catalog and print one page of it. Items offered by several
suppliers are listed once with every offer.`,
		RunE: runItems,
	}

	cmd.Flags().String("category1", "", "filter by top-level category")
	cmd.Flags().String("category2", "", "filter by second-level category")
	cmd.Flags().String("category3", "", "filter by third-level category")
	cmd.Flags().String("search", "", "case-insensitive item name search")
	cmd.Flags().Int("page", 1, "page to print")
	cmd.Flags().Int("page-size", 0, "rows per page (5, 10 or 15; default catalog.page_size)")

	return cmd
}

func runItems(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filter := catalog.FilterState{}
	c1, _ := cmd.Flags().GetString("category1")
	c2, _ := cmd.Flags().GetString("category2")
	c3, _ := cmd.Flags().GetString("category3")
	search, _ := cmd.Flags().GetString("search")
	filter = filter.WithCategory1(c1).WithCategory2(c2).WithCategory3(c3).WithSearch(search)

	pageNumber, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize == 0 {
		pageSize = cfg.PageSize
	}
	page, err := catalog.NewPageState(cfg.PageSize).WithSize(pageSize)
	if err != nil {
		return err
	}
	page = page.WithNumber(pageNumber)

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := requireSession(ctx, store)
	if err != nil {
		return err
	}

	client, err := newAPIClient(cfg, session)
	if err != nil {
		return err
	}

	var items []model.CatalogItem
	err = cli.WithSpinner(cmd.ErrOrStderr(), "Fetching catalog", func() error {
		var fetchErr error
		items, fetchErr = client.FetchItems(ctx)
		return fetchErr
	})
	if err != nil {
		return err
	}

	return printItems(cmd.OutOrStdout(), items, filter, page)
}

// printItems writes one page of the projection of items under filter.
func printItems(w io.Writer, items []model.CatalogItem, filter catalog.FilterState, page catalog.PageState) error {
	proj := catalog.Project(items, filter, func(string) bool { return false })
	total := page.TotalPages(len(proj.Unique))

	if len(proj.Unique) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No items match"))
		return err
	}

	rows := make([][]string, 0, page.Size)
	for _, row := range catalog.Paginate(proj.Unique, page) {
		rows = append(rows, []string{
			row.ItemID,
			row.Category1Name,
			row.Category2Name,
			row.Category3Name,
			row.ItemName,
			offerSummary(items, row.Key()),
		})
	}

	summary := fmt.Sprintf("page %d/%d · %d items", page.Number, max(total, 1), len(proj.Unique))
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		cli.RenderTable([]string{"ID", "Category 1", "Category 2", "Category 3", "Item", "Offers"}, rows),
		cli.SubtleStyle.Render(summary),
	)
	return err
}

// offerSummary lists every supplier's unit price for key.
func offerSummary(items []model.CatalogItem, key model.ItemKey) string {
	offers := catalog.OffersFor(items, key)
	parts := make([]string, 0, len(offers))
	for _, offer := range offers {
		parts = append(parts, fmt.Sprintf("%s %s", offer.SupplierName, catalog.FormatCellValue(offer.Price.String(), offer.Unit)))
	}
	if len(parts) == 0 {
		return catalog.Placeholder
	}
	return strings.Join(parts, ", ")
}
