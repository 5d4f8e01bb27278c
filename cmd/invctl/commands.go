package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/rogerio-castellano/inventory-client/internal/inventory"
	"github.com/rogerio-castellano/inventory-client/internal/models"
)

type app struct {
	deps inventory.Deps
	nav  *inventory.StackNavigator
	term *terminal
	out  io.Writer
	errs io.Writer
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) int {
	switch cmd {
	case "list":
		return a.list(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "add":
		return a.add(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "restock":
		return a.restock(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	default:
		fmt.Fprintf(a.errs, "unknown command: %s\n", cmd)
		return exitUsage
	}
}

func (a *app) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.errs)
	return fs
}

// status maps a screen error to an exit code. API failures were already
// logged by the screen.
func (a *app) status(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, inventory.ErrDeclined):
		fmt.Fprintln(a.out, "cancelled")
		return exitOK
	case errors.Is(err, inventory.ErrMissingFields):
		return exitUsage
	default:
		return exitFailed
	}
}

func (a *app) list(ctx context.Context, args []string) int {
	fs := a.flags("list")
	query := fs.StringP("query", "q", "", "case-insensitive name filter")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	view := inventory.NewListView(a.deps)
	defer view.Unmount()
	if err := view.Focus(ctx); err != nil {
		return a.status(err)
	}
	view.SetQuery(*query)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tPRICE\t")
	for _, row := range view.Rows() {
		marker := ""
		if row.LowStock {
			marker = "low stock"
		}
		p := row.Product
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Quantity, p.Price, marker)
	}
	tw.Flush()
	return exitOK
}

func (a *app) show(ctx context.Context, args []string) int {
	id, ok := a.oneID("show", args)
	if !ok {
		return exitUsage
	}

	a.nav.Navigate(inventory.RouteDetailsProduct, inventory.Params{ProductID: id})
	view := inventory.NewDetailView(a.deps)
	defer view.Unmount()
	if err := view.Mount(ctx, id); err != nil {
		return a.status(err)
	}
	printProduct(a.out, view.Product())
	return exitOK
}

func (a *app) add(ctx context.Context, args []string) int {
	fs := a.flags("add")
	fields := productFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	a.nav.Navigate(inventory.RouteAddProduct, inventory.Params{})
	form := inventory.NewCreateForm(a.deps)
	defer form.Unmount()
	if err := applyFields(fs, fields, form.Set); err != nil {
		fmt.Fprintf(a.errs, "error: %v\n", err)
		return exitUsage
	}

	created, err := form.Submit(ctx)
	if err != nil {
		return a.status(err)
	}
	printProduct(a.out, created)
	return exitOK
}

func (a *app) edit(ctx context.Context, args []string) int {
	fs := a.flags("edit")
	fields := productFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	id, ok := a.oneID("edit", fs.Args())
	if !ok {
		return exitUsage
	}

	a.nav.Navigate(inventory.RouteEditProduct, inventory.Params{ProductID: id})
	form := inventory.NewEditForm(a.deps)
	defer form.Unmount()
	if err := form.Mount(ctx, id); err != nil {
		return a.status(err)
	}
	if err := applyFields(fs, fields, form.Set); err != nil {
		fmt.Fprintf(a.errs, "error: %v\n", err)
		return exitUsage
	}

	updated, err := form.Submit(ctx)
	if err != nil {
		return a.status(err)
	}
	printProduct(a.out, updated)
	return exitOK
}

// restock takes positional arguments only so that a negative delta is not
// read as a flag.
func (a *app) restock(ctx context.Context, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(a.errs, "usage: invctl restock <id> <delta>")
		return exitUsage
	}
	id, delta := models.ProductID(args[0]), args[1]

	view := inventory.NewListView(a.deps)
	defer view.Unmount()
	if err := view.Focus(ctx); err != nil {
		return a.status(err)
	}
	if err := view.BeginRestock(id); err != nil {
		fmt.Fprintf(a.errs, "error: %v: %s\n", err, id)
		return exitFailed
	}
	view.SetRestockAmount(delta)

	updated, err := view.ConfirmRestock(ctx)
	if err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			fmt.Fprintf(a.errs, "error: %v\n", err)
			return exitUsage
		}
		return a.status(err)
	}
	printProduct(a.out, updated)
	return exitOK
}

func (a *app) delete(ctx context.Context, args []string) int {
	fs := a.flags("delete")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	id, ok := a.oneID("delete", fs.Args())
	if !ok {
		return exitUsage
	}
	a.term.assumeYes = *yes

	a.nav.Navigate(inventory.RouteDetailsProduct, inventory.Params{ProductID: id})
	view := inventory.NewDetailView(a.deps)
	defer view.Unmount()
	if err := view.Mount(ctx, id); err != nil {
		return a.status(err)
	}
	if err := view.Delete(ctx); err != nil {
		return a.status(err)
	}
	fmt.Fprintf(a.out, "deleted %s\n", id)
	return exitOK
}

func (a *app) oneID(cmd string, args []string) (models.ProductID, bool) {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintf(a.errs, "usage: invctl %s <id>\n", cmd)
		return "", false
	}
	return models.ProductID(args[0]), true
}

var fieldOrder = []string{
	inventory.FieldName,
	inventory.FieldDescription,
	inventory.FieldQuantity,
	inventory.FieldPrice,
}

func productFlags(fs *pflag.FlagSet) map[string]*string {
	fields := make(map[string]*string, len(fieldOrder))
	for _, f := range fieldOrder {
		fields[f] = fs.String(f, "", "product "+f)
	}
	return fields
}

// applyFields copies the flags given on the command line into a form.
func applyFields(fs *pflag.FlagSet, fields map[string]*string, set func(field, value string) error) error {
	for _, f := range fieldOrder {
		if fs.Changed(f) {
			if err := set(f, *fields[f]); err != nil {
				return err
			}
		}
	}
	return nil
}

func printProduct(w io.Writer, p models.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	fmt.Fprintf(tw, "Quantity:\t%s\n", p.Quantity)
	fmt.Fprintf(tw, "Price:\t%s\n", p.Price)
	if inventory.IsLowStock(p) {
		fmt.Fprintln(tw, "Stock:\tlow")
	}
	tw.Flush()
}
