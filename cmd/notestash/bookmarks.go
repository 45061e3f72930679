package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/pkg/client"
)

func newBookmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarks",
	}
	cmd.AddCommand(
		newBookmarksListCmd(),
		newBookmarksAddCmd(),
		newBookmarksEditCmd(),
		newBookmarksRemoveCmd(),
		newBookmarksFavCmd(),
	)
	return cmd
}

func bookmarkStore() (*client.BookmarkStore, error) {
	c, err := authedClient()
	if err != nil {
		return nil, err
	}
	return client.NewBookmarkStore(c), nil
}

func newBookmarksListCmd() *cobra.Command {
	var search string
	var tags []string
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := bookmarkStore()
			if err != nil {
				return err
			}
			store.SetSearchTerm(search)
			store.SetSelectedTags(tags)
			store.SetFavoritesOnly(favorites)

			bookmarks, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range bookmarks {
				printBookmark(b)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "free-text search term")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "require all of these tags")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorites")
	return cmd
}

func newBookmarksAddCmd() *cobra.Command {
	var draft client.BookmarkDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a bookmark; the title is scraped from the page when omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := bookmarkStore()
			if err != nil {
				return err
			}
			bookmark, err := store.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created bookmark %s\n", bookmark.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.URL, "url", "", "bookmark URL")
	cmd.Flags().StringVar(&draft.Title, "title", "", "title (defaults to the page title)")
	cmd.Flags().StringVar(&draft.Description, "desc", "", "description")
	cmd.Flags().StringSliceVarP(&draft.Tags, "tags", "t", nil, "tags")
	cmd.Flags().BoolVar(&draft.Favorite, "favorite", false, "mark as favorite")
	cmd.MarkFlagRequired("url")
	return cmd
}

func newBookmarksEditCmd() *cobra.Command {
	var url, title, desc string
	var tags []string
	var favorite bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := bookmarkStore()
			if err != nil {
				return err
			}

			var patch models.BookmarkPatch
			if cmd.Flags().Changed("url") {
				patch.URL = &url
			}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}
			if cmd.Flags().Changed("favorite") {
				patch.Favorite = &favorite
			}

			bookmark, err := store.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated bookmark %s\n", bookmark.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "bookmark URL")
	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags (replaces existing)")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "favorite flag")
	return cmd
}

func newBookmarksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := bookmarkStore()
			if err != nil {
				return err
			}
			if err := store.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		},
	}
}

func newBookmarksFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <id>",
		Short: "Toggle a bookmark's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := bookmarkStore()
			if err != nil {
				return err
			}
			if _, err := store.List(cmd.Context()); err != nil {
				return err
			}
			return store.ToggleFavorite(cmd.Context(), args[0])
		},
	}
}

func printBookmark(b models.Bookmark) {
	marker := " "
	if b.Favorite {
		marker = "*"
	}
	title := b.Title
	if title == "" {
		title = b.URL
	}
	line := fmt.Sprintf("%s %s  %s  <%s>", marker, b.ID, title, b.URL)
	if len(b.Tags) > 0 {
		line += "  [" + strings.Join(b.Tags, ", ") + "]"
	}
	fmt.Println(line)
}
