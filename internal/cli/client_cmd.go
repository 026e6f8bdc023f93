package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientArchiveCmd(app),
		newClientUnarchiveCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var name, contact, email, phone string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{
				Name:        name,
				ContactName: contact,
				Email:       email,
				Phone:       phone,
			}
			if err := app.Clients.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added client %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatClientList(clients))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived clients")

	return cmd
}

func newClientArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive CLIENT",
		Short: "Archive a client and hide its work from the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveClientID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Clients.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived client %s\n", args[0])
			return nil
		},
	}
}

func newClientUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive CLIENT",
		Short: "Restore an archived client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveClientID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Clients.Unarchive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived client %s\n", args[0])
			return nil
		},
	}
}

func newClientRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove CLIENT",
		Short: "Delete a client and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveClientID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Clients.Delete(ctx, id, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed client %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete without archiving first")

	return cmd
}
