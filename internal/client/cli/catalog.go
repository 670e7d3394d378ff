package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/catalog"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
)

func (a *App) Cuisines(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading cuisines...")
	list, err := a.catalog.Cuisines(ctx)
	if err != nil {
		a.printCatalogError(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No cuisines available.")
		return nil
	}
	for _, c := range list {
		if c.Description != "" {
			fmt.Fprintf(a.out, "%-10s %s: %s\n", c.ID, c.Name, c.Description)
		} else {
			fmt.Fprintf(a.out, "%-10s %s\n", c.ID, c.Name)
		}
	}
	return nil
}

// Restaurants lists one page of a cuisine: restaurants <cuisine> [page].
func (a *App) Restaurants(ctx context.Context, args []string) error {
	page := &models.Page{Number: 1, Limit: catalog.DefaultPageLimit}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "Page must be a positive number.")
			return fmt.Errorf("invalid page %q", args[1])
		}
		page.Number = n
	}

	fmt.Fprintln(a.out, "Loading restaurants...")
	list, err := a.catalog.Restaurants(ctx, args[0], page)
	if err != nil {
		a.printCatalogError(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No restaurants on this page.")
		return nil
	}
	for _, r := range list {
		status := "closed"
		if r.IsOpen {
			status = "open"
		}
		fmt.Fprintf(a.out, "[%s] %-6s %s  rating %.1f  delivery %s\n", status, r.ID, r.RestaurantName, r.Rating, r.DeliveryTime)
	}
	return nil
}

// Show prints the details of one restaurant: show <id>.
func (a *App) Show(ctx context.Context, args []string) error {
	fmt.Fprintln(a.out, "Loading details...")
	r, err := a.catalog.Restaurant(ctx, args[0])
	if err != nil {
		a.printCatalogError(err)
		return err
	}

	status := "Closed"
	if r.IsOpen {
		status = "Open"
	}
	fmt.Fprintf(a.out, "%s (%s, %s)\n", r.RestaurantName, r.CuisineID, status)
	fmt.Fprintf(a.out, "  %s\n", r.ShortDesc)
	if r.Speciality != "" {
		fmt.Fprintf(a.out, "  Speciality:    %s\n", r.Speciality)
	}
	fmt.Fprintf(a.out, "  Rating:        %.1f\n", r.Rating)
	fmt.Fprintf(a.out, "  Delivery:      %s, %.2f %s\n", r.DeliveryTime, r.DeliveryCost, r.Currency)
	fmt.Fprintf(a.out, "  Minimum order: %.2f %s\n", r.MinOrder, r.Currency)
	return nil
}

func (a *App) printCatalogError(err error) {
	switch {
	case errors.Is(err, catalog.ErrCuisineNotFound), errors.Is(err, catalog.ErrRestaurantNotFound):
		fmt.Fprintln(a.out, err)
	default:
		fmt.Fprintln(a.out, api.Message(err))
	}
}
