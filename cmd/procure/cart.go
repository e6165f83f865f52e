package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/procure/internal/cart"
	"github.com/Veraticus/procure/internal/cli"
	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Add items to the cart and review past submissions",
	}

	cmd.AddCommand(cartSubmitCmd())
	cmd.AddCommand(cartHistoryCmd())

	return cmd
}

func cartSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Add items to the cart by id",
		Example: `  procure cart submit --item 1042 --item 2210:3
  procure cart submit --item 1042:2,2210`,
		RunE: runCartSubmit,
	}

	cmd.Flags().StringSlice("item", nil, "item to add as ID or ID:QTY (repeatable)")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func runCartSubmit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	specs, _ := cmd.Flags().GetStringSlice("item")
	lines, err := parseItemSpecs(specs)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

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
	err = cli.WithSpinner(cmd.ErrOrStderr(), "Checking items", func() error {
		var fetchErr error
		items, fetchErr = client.FetchItems(ctx)
		return fetchErr
	})
	if err != nil {
		return err
	}
	if lines, err = resolveLines(items, lines); err != nil {
		return err
	}

	submitter := cart.NewSubmitter(client, session.Owner(), cart.WithHistory(store))

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx = handler.HandleInterrupts(ctx, "Cart submission", "Run 'procure cart history' to see whether it was recorded.")

	var submission *model.Submission
	err = cli.WithSpinner(cmd.ErrOrStderr(), "Adding to cart", func() error {
		var submitErr error
		submission, submitErr = submitter.Submit(ctx, lines)
		return submitErr
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Added %d item(s), %d unit(s) to the cart (submission %s)",
		len(submission.Lines), submission.TotalQuantity(), viewmodel.ShortID(submission.ID),
	)))
	return nil
}

var errInvalidItemSpec = errors.New("invalid item spec")

// parseItemSpecs turns ID[:QTY] specs into cart lines in the order given. A repeated id
// keeps its first position and the last quantity.
func parseItemSpecs(specs []string) ([]model.CartLine, error) {
	var lines []model.CartLine
	index := make(map[string]int)

	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		id, rawQty, hasQty := strings.Cut(spec, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, common.NewUserError(fmt.Sprintf("Invalid item %q: missing id", spec), errInvalidItemSpec)
		}

		qty := model.DefaultQuantity
		if hasQty {
			n, err := strconv.Atoi(strings.TrimSpace(rawQty))
			if err != nil || n < 1 {
				return nil, common.NewUserError(
					fmt.Sprintf("Invalid quantity in %q: must be a whole number of at least 1", spec),
					errInvalidItemSpec,
				)
			}
			qty = n
		}

		if i, ok := index[id]; ok {
			lines[i].Quantity = qty
			continue
		}
		index[id] = len(lines)
		lines = append(lines, model.CartLine{ItemsID: id, Quantity: qty})
	}

	if len(lines) == 0 {
		return nil, common.NewUserError("Name at least one item with --item", common.ErrEmptyCart)
	}
	return lines, nil
}

// resolveLines matches each line to its catalog item so the id is posted in the form the
// backend issued it. Unknown ids are rejected.
func resolveLines(items []model.CatalogItem, lines []model.CartLine) ([]model.CartLine, error) {
	byID := make(map[string]model.CatalogItem, len(items))
	for _, item := range items {
		if _, ok := byID[item.ItemID]; !ok {
			byID[item.ItemID] = item
		}
	}

	resolved := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		item, ok := byID[line.ItemsID]
		if !ok {
			return nil, common.NewUserError(
				fmt.Sprintf("No catalog item with id %q", line.ItemsID),
				fmt.Errorf("item %s: %w", line.ItemsID, common.ErrNotFound),
			)
		}
		resolved = append(resolved, item.CartLine(line.Quantity))
	}
	return resolved, nil
}

func cartHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous cart submissions",
		RunE:  runCartHistory,
	}

	cmd.Flags().Int("limit", 20, "maximum number of submissions to show")
	cmd.Flags().Duration("since", 0, "only show submissions newer than this (e.g. 72h)")
	cmd.Flags().Bool("all-users", false, "include submissions made under other usernames")

	return cmd
}

func runCartHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	limit, _ := cmd.Flags().GetInt("limit")
	since, _ := cmd.Flags().GetDuration("since")
	allUsers, _ := cmd.Flags().GetBool("all-users")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter := service.SubmissionFilter{Limit: limit}
	if !allUsers {
		session, sessionErr := currentSession(ctx, store)
		if sessionErr != nil {
			return sessionErr
		}
		filter.Owner = session.Owner()
	}
	if since > 0 {
		from := time.Now().Add(-since)
		filter.Since = &from
	}

	submissions, err := store.ListSubmissions(ctx, filter)
	if err != nil {
		return err
	}

	return printHistory(cmd.OutOrStdout(), viewmodel.NewSubmissionViews(submissions))
}

// printHistory writes the submission table.
func printHistory(w io.Writer, submissions []viewmodel.SubmissionView) error {
	if len(submissions) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No cart submissions yet"))
		return err
	}

	rows := make([][]string, 0, len(submissions))
	failed := 0
	for _, s := range submissions {
		status := cli.SuccessStyle.Render(s.Status)
		if s.Failed {
			failed++
			status = cli.ErrorStyle.Render(s.Status)
		}
		rows = append(rows, []string{
			viewmodel.ShortID(s.ID),
			s.When,
			s.Owner,
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Quantity),
			status,
			viewmodel.TruncateString(s.Error, 40),
		})
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n",
		cli.RenderTable([]string{"ID", "When", "User", "Lines", "Units", "Status", "Error"}, rows),
		cli.SubtleStyle.Render(fmt.Sprintf("%d submissions, %d failed", len(submissions), failed)),
	)
	return err
}
