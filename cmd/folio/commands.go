package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/gallery"
)

func newAddCmd(flags *globalFlags) *cobra.Command {
	var title, album string
	cmd := &cobra.Command{
		Use:   "add <files...>",
		Short: "Add image files to the gallery",
		Long: `Add reads each image file, downscales large ones and stores it in the
gallery. The first file that fails stops the batch; earlier files stay added.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			photos, err := a.AddFiles(cmd.Context(), args, title, album)
			for _, p := range photos {
				fmt.Fprintf(cmd.OutOrStdout(), "added %s  %s\n", p.ID, p.Title)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "title for the added photos (default file name)")
	cmd.Flags().StringVar(&album, "album", "", "album id or title to add the photos to")
	return cmd
}

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		importIndex int
		album       string
	)
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search Pixabay for stock photos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			term := strings.Join(args, " ")
			hits, err := a.SearchStock(cmd.Context(), term)
			if err != nil {
				return err
			}
			if importIndex > 0 {
				photo, err := a.Import(cmd.Context(), hits, importIndex, album)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s  %s\n", photo.ID, photo.Title)
				return nil
			}

			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(out, "#\tSIZE\tLIKES\tTAGS")
			for i, hit := range hits {
				fmt.Fprintf(out, "%d\t%dx%d\t%d\t%s\n", i+1, hit.ImageWidth, hit.ImageHeight, hit.Likes, hit.Title())
			}
			return out.Flush()
		},
	}
	cmd.Flags().IntVar(&importIndex, "import", 0, "import the Nth result instead of listing")
	cmd.Flags().StringVar(&album, "album", "", "album id or title for the imported photo")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var album string
	cmd := &cobra.Command{
		Use:   "export <photo-id> <out>",
		Short: "Write a photo with its filters applied",
		Long: `Export loads the photo, applies its filters and writes the result. The
format follows the extension of out (.png, .jpg, .gif, .tif, .bmp).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}
			if err := a.Export(cmd.Context(), args[0], album, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&album, "album", "", "export the copy held by this album")
	return cmd
}

func newAlbumsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			albums := a.Store.Snapshot().State.Albums
			if len(albums) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no albums")
				return nil
			}
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(out, "ID\tPHOTOS\tCREATED\tTITLE")
			for _, album := range albums {
				fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", album.ID, len(album.Photos), album.CreatedAt.Format("2006-01-02"), album.Title)
			}
			return out.Flush()
		},
	}
}

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [view]",
		Short: "List the photos of a view",
		Long: `List prints the photos of a view: all (default), favorites,
album:<id>, or an album title.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			token := "all"
			if len(args) == 1 {
				token = args[0]
			}
			title, entries, err := a.List(token)
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), title, entries)
		},
	}
}

func writeEntries(w io.Writer, title string, entries []gallery.Entry) error {
	fmt.Fprintf(w, "%s (%d)\n", title, len(entries))
	out := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(out, "ID\tFAV\tFILTERS\tTITLE")
	for _, e := range entries {
		fav := ""
		if e.Photo.Favorite {
			fav = "♥"
		}
		filters := "-"
		if f := e.Photo.EffectiveFilters(); !f.IsDefault() {
			filters = f.CSS()
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", e.Photo.ID, fav, filters, e.Photo.Title)
	}
	return out.Flush()
}
