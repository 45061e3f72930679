package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/notestash/notestash/pkg/client"
)

const defaultAPIURL = "http://localhost:5000/api"

func apiURL() string {
	if url := os.Getenv("NOTESTASH_API"); url != "" {
		return url
	}
	return defaultAPIURL
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notestash",
		Short:         "Personal notes and bookmarks manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newNotesCmd(),
		newBookmarksCmd(),
	)
	return root
}

// authedClient loads the stored credentials and returns a client carrying
// the bearer token.
func authedClient() (*client.Client, error) {
	store, err := client.NewCredentialStore()
	if err != nil {
		return nil, err
	}
	creds, err := store.Load()
	if err != nil {
		return nil, err
	}
	return client.New(apiURL(), creds.Token), nil
}
