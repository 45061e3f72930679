package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/pkg/client"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes",
	}
	cmd.AddCommand(
		newNotesListCmd(),
		newNotesAddCmd(),
		newNotesEditCmd(),
		newNotesRemoveCmd(),
		newNotesFavCmd(),
		newNotesSuggestCmd(),
	)
	return cmd
}

func noteStore() (*client.NoteStore, error) {
	c, err := authedClient()
	if err != nil {
		return nil, err
	}
	return client.NewNoteStore(c), nil
}

func newNotesListCmd() *cobra.Command {
	var search string
	var tags []string
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
			if err != nil {
				return err
			}
			store.SetSearchTerm(search)
			store.SetSelectedTags(tags)
			store.SetFavoritesOnly(favorites)

			notes, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range notes {
				printNote(n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "free-text search term")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "require all of these tags")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorites")
	return cmd
}

func newNotesAddCmd() *cobra.Command {
	var draft client.NoteDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
			if err != nil {
				return err
			}
			note, err := store.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "note title")
	cmd.Flags().StringVar(&draft.Content, "content", "", "note content")
	cmd.Flags().StringSliceVarP(&draft.Tags, "tags", "t", nil, "tags")
	cmd.Flags().BoolVar(&draft.Favorite, "favorite", false, "mark as favorite")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")
	return cmd
}

func newNotesEditCmd() *cobra.Command {
	var title, content string
	var tags []string
	var favorite bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
			if err != nil {
				return err
			}

			// Only flags the user actually set become part of the patch.
			var patch models.NotePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}
			if cmd.Flags().Changed("favorite") {
				patch.Favorite = &favorite
			}

			note, err := store.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags (replaces existing)")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "favorite flag")
	return cmd
}

func newNotesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
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

func newNotesFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <id>",
		Short: "Toggle a note's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
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

func newNotesSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <id>",
		Short: "Suggest tags for a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
			if err != nil {
				return err
			}
			tags, err := store.SuggestTags(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(tags, ", "))
			return nil
		},
	}
}

func printNote(n models.Note) {
	marker := " "
	if n.Favorite {
		marker = "*"
	}
	line := fmt.Sprintf("%s %s  %s", marker, n.ID, n.Title)
	if len(n.Tags) > 0 {
		line += "  [" + strings.Join(n.Tags, ", ") + "]"
	}
	fmt.Println(line)
}
