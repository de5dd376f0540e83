package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rental-search/internal/catalog"
	"rental-search/internal/model"
)

var (
	transportQ     model.TransportQuery
	accommodationQ model.AccommodationQuery
	itemQ          model.ItemQuery
	combinedQ      model.CombinedQuery
	multiQ         model.MultiQuery

	// per-category blocks of the multi command
	multiTransport     model.TransportQuery
	multiAccommodation model.AccommodationQuery
	multiItem          model.ItemQuery

	maxPrice  float64
	minRating float64
)

var transportCmd = &cobra.Command{
	Use:   "transport",
	Short: "Search vehicles for rent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := searchContext(cmd)
		defer cancel()

		q := transportQ
		q.MaxPricePerDay = optionalFloat(cmd, "max-price", maxPrice)
		q.MinRating = optionalFloat(cmd, "min-rating", minRating)
		return printJSON(cmd.OutOrStdout(), svc.Engine.SearchTransport(ctx, q))
	},
}

var accommodationCmd = &cobra.Command{
	Use:     "accommodation",
	Aliases: []string{"stay"},
	Short:   "Search places to stay",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := searchContext(cmd)
		defer cancel()

		q := accommodationQ
		q.MaxPricePerDay = optionalFloat(cmd, "max-price", maxPrice)
		q.MinRating = optionalFloat(cmd, "min-rating", minRating)
		return printJSON(cmd.OutOrStdout(), svc.Engine.SearchAccommodation(ctx, q))
	},
}

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Search rentable items",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := searchContext(cmd)
		defer cancel()

		q := itemQ
		q.MaxPricePerDay = optionalFloat(cmd, "max-price", maxPrice)
		q.MinRating = optionalFloat(cmd, "min-rating", minRating)
		return printJSON(cmd.OutOrStdout(), svc.Engine.SearchItem(ctx, q))
	},
}

var combinedCmd = &cobra.Command{
	Use:   "combined",
	Short: "Find bundles across categories that fit a total budget",
	Long: `combined picks one listing from each selected category and returns the
cheapest bundles whose cost over the trip fits the total budget.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := searchContext(cmd)
		defer cancel()

		res := svc.Engine.SearchCombined(ctx, combinedQ)
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		if res.IsError() {
			return errUsage
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <listing-id>",
	Short: "Show one listing by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := searchContext(cmd)
		defer cancel()

		l, err := catalog.FetchListing(ctx, svc.Source, args[0])
		if err != nil {
			if errors.Is(err, catalog.ErrListingNotFound) {
				return fmt.Errorf("listing %s not found", args[0])
			}
			return errors.New(catalog.Describe(err))
		}
		return printJSON(cmd.OutOrStdout(), model.NewSearchResult(l, nil))
	},
}

var multiCmd = &cobra.Command{
	Use:   "multi",
	Short: "Search several categories at once",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := searchContext(cmd)
		defer cancel()

		q := multiQ
		q.MaxPricePerDay = optionalFloat(cmd, "max-price", maxPrice)
		tq, aq, iq := multiTransport, multiAccommodation, multiItem
		q.Transport, q.Accommodation, q.Item = &tq, &aq, &iq
		res := svc.Engine.SearchMultiple(ctx, q)
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		if res.IsError() {
			return errUsage
		}
		return nil
	},
}

func init() {
	f := transportCmd.Flags()
	f.StringVarP(&transportQ.Location, "location", "l", "", "location to search in")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum price per day")
	f.StringVar(&transportQ.VehicleType, "vehicle-type", "", "vehicle type, e.g. car, van, motorcycle")
	f.StringVar(&transportQ.Make, "make", "", "vehicle make")
	f.StringVar(&transportQ.Model, "model", "", "vehicle model")
	f.IntVar(&transportQ.MinYear, "min-year", 0, "oldest acceptable model year")
	f.Float64Var(&minRating, "min-rating", 0, "minimum rating (0-5)")

	f = accommodationCmd.Flags()
	f.StringVarP(&accommodationQ.Location, "location", "l", "", "location to search in")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum price per night")
	f.StringVar(&accommodationQ.PropertyType, "property-type", "", "property type, e.g. apartment, villa")
	f.IntVar(&accommodationQ.MaxGuests, "guests", 0, "number of guests to host")
	f.Float64Var(&minRating, "min-rating", 0, "minimum rating (0-5)")

	f = itemCmd.Flags()
	f.StringVarP(&itemQ.Location, "location", "l", "", "location to search in")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum price per day")
	f.StringVar(&itemQ.ItemCategory, "category", "", "item category, e.g. electronics, tools")
	f.StringVarP(&itemQ.Keyword, "keyword", "k", "", "keyword matched against title and description")
	f.Float64Var(&minRating, "min-rating", 0, "minimum rating (0-5)")

	f = combinedCmd.Flags()
	f.Float64VarP(&combinedQ.TotalBudget, "budget", "b", 0, "total budget for the whole trip")
	f.IntVarP(&combinedQ.NumDays, "days", "d", 1, "number of rental days")
	f.BoolVar(&combinedQ.SearchTransport, "transport", false, "include a vehicle")
	f.BoolVar(&combinedQ.SearchAccommodation, "accommodation", false, "include a stay")
	f.BoolVar(&combinedQ.SearchItems, "items", false, "include an item")
	f.StringVarP(&combinedQ.Location, "location", "l", "", "location to search in")
	f.StringVar(&combinedQ.VehicleType, "vehicle-type", "", "vehicle type")
	f.StringVar(&combinedQ.Make, "make", "", "vehicle make")
	f.StringVar(&combinedQ.PropertyType, "property-type", "", "property type")
	f.IntVar(&combinedQ.MaxGuests, "guests", 0, "number of guests to host")
	f.StringVar(&combinedQ.ItemCategory, "category", "", "item category")
	f.StringVarP(&combinedQ.Keyword, "keyword", "k", "", "item keyword")

	f = multiCmd.Flags()
	f.BoolVar(&multiQ.SearchTransport, "transport", false, "search vehicles")
	f.BoolVar(&multiQ.SearchAccommodation, "accommodation", false, "search stays")
	f.BoolVar(&multiQ.SearchItems, "items", false, "search items")
	f.StringVarP(&multiQ.Location, "location", "l", "", "location shared by every category")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum price per day shared by every category")
	f.StringVar(&multiTransport.VehicleType, "transport-vehicle-type", "", "vehicle type")
	f.StringVar(&multiTransport.Make, "transport-make", "", "vehicle make")
	f.StringVar(&multiTransport.Model, "transport-model", "", "vehicle model")
	f.IntVar(&multiTransport.MinYear, "transport-min-year", 0, "oldest acceptable model year")
	f.StringVar(&multiAccommodation.PropertyType, "accommodation-property-type", "", "property type")
	f.IntVar(&multiAccommodation.MaxGuests, "accommodation-guests", 0, "number of guests to host")
	f.StringVar(&multiItem.ItemCategory, "item-category", "", "item category")
	f.StringVar(&multiItem.Keyword, "item-keyword", "", "item keyword")

	rootCmd.AddCommand(transportCmd, accommodationCmd, itemCmd, combinedCmd, multiCmd, getCmd)
}
