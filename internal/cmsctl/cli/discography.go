package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/labelshop/internal/cmsctl/api"
	"github.com/spf13/cobra"
)

func (app *App) discographyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "discography",
		Aliases: []string{"disco"},
		Short:   "List and create discography entries",
	}
	cmd.AddCommand(app.discographyListCmd(), app.discographyCreateCmd())
	return cmd
}

func (app *App) discographyListCmd() *cobra.Command {
	var opts api.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discography entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, total, err := app.client.ListDiscography(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printDiscography(cmd.OutOrStdout(), entries, total)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

func (app *App) discographyCreateCmd() *cobra.Command {
	var (
		in   api.DiscographyInput
		year int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a discography entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("year") {
				in.ReleaseYear = &year
			}
			e, err := app.client.CreateDiscography(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s, %s)\n", e.ID, e.Slug, e.Status)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "release title")
	f.StringVar(&in.Slug, "slug", "", "slug (derived from the title when empty)")
	f.StringVar(&in.Artist, "artist", "", "artist")
	f.IntVar(&year, "year", 0, "release year")
	f.StringVar(&in.ReleaseDate, "release-date", "", "release date, YYYY-MM-DD")
	f.StringVar(&in.Format, "format", "", `format, e.g. "LP" or "CD"`)
	f.StringVar(&in.CatalogNumber, "catalog-number", "", "catalog number")
	f.StringVar(&in.Description, "description", "", "description")
	f.StringVar(&in.CoverURL, "cover-url", "", "cover image URL")
	f.StringVar(&in.ProductHandle, "product-handle", "", "storefront product handle")
	f.StringVar(&in.Status, "status", "", "initial status (default draft)")
	f.StringSliceVar(&in.Tags, "tag", nil, "tag, repeatable")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func printDiscography(w io.Writer, entries []api.DiscographyEntry, total int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tSTATUS\tYEAR\tARTIST\tTITLE")
	for _, e := range entries {
		year := "-"
		if e.ReleaseYear != nil {
			year = strconv.Itoa(*e.ReleaseYear)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Slug, e.Status, year, e.Artist, e.Title)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d of %d\n", len(entries), total)
}
