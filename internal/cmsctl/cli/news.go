package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cmsctl/api"
	"github.com/spf13/cobra"
)

func (app *App) newsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "List, create, publish and archive news entries",
	}
	cmd.AddCommand(app.newsListCmd(), app.newsCreateCmd(), app.newsPublishCmd(), app.newsArchiveCmd())
	return cmd
}

func addListFlags(cmd *cobra.Command, o *api.ListOptions) {
	cmd.Flags().StringVar(&o.Status, "status", "", "filter by status (draft, published, archived)")
	cmd.Flags().StringVar(&o.Tag, "tag", "", "filter by tag")
	cmd.Flags().IntVar(&o.Limit, "limit", 20, "page size")
	cmd.Flags().IntVar(&o.Offset, "offset", 0, "page offset")
}

func (app *App) newsListCmd() *cobra.Command {
	var opts api.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List news entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, total, err := app.client.ListNews(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printNews(cmd.OutOrStdout(), entries, total)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

func (app *App) newsCreateCmd() *cobra.Command {
	var in api.NewsInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a news entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.client.CreateNews(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s, %s)\n", e.ID, e.Slug, e.Status)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "title")
	f.StringVar(&in.Slug, "slug", "", "slug (derived from the title when empty)")
	f.StringVar(&in.Excerpt, "excerpt", "", "short summary")
	f.StringVar(&in.Content, "content", "", "body")
	f.StringVar(&in.Author, "author", "", "author")
	f.StringVar(&in.Status, "status", "", "initial status (default draft)")
	f.StringSliceVar(&in.Tags, "tag", nil, "tag, repeatable")
	f.StringVar(&in.CoverURL, "cover-url", "", "cover image URL, as printed by cmsctl upload")
	f.StringVar(&in.SEOTitle, "seo-title", "", "SEO title")
	f.StringVar(&in.SEODescription, "seo-description", "", "SEO description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (app *App) newsPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a news entry and notify subscribers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.client.PublishNews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", e.Slug)
			return nil
		},
	}
}

func (app *App) newsArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a news entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.client.ArchiveNews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", e.Slug)
			return nil
		},
	}
}

func printNews(w io.Writer, entries []api.NewsEntry, total int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tSTATUS\tPUBLISHED\tTITLE")
	for _, e := range entries {
		published := "-"
		if e.PublishedAt != nil {
			published = e.PublishedAt.Format(time.DateOnly)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Slug, e.Status, published, e.Title)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d of %d\n", len(entries), total)
}
