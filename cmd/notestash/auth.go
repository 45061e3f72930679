package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notestash/notestash/pkg/client"
)

func newSignupCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(apiURL(), "")
			token, err := c.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}

			store, err := client.NewCredentialStore()
			if err != nil {
				return err
			}
			if err := store.Save(client.Credentials{Name: name, Email: email, Token: token}); err != nil {
				return err
			}
			fmt.Printf("Signed up as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(apiURL(), "")
			token, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			store, err := client.NewCredentialStore()
			if err != nil {
				return err
			}
			if err := store.Save(client.Credentials{Email: email, Token: token}); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := client.NewCredentialStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}
