package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/tracker"
	"github.com/jonathan/job-tracker/internal/types"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage the contacts of an application",
}

var contactAddCmd = &cobra.Command{
	Use:   "add <application-id>",
	Short: "Add a contact to an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := contactReq
		if req.Type == "" {
			req.Type = types.ContactOther
		}
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			c, err := tracker.New(kv).AddContact(ctx, args[0], req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added contact %s (%s)\n", c.ID, c.Name)
			return nil
		})
	},
}

var contactRemoveCmd = &cobra.Command{
	Use:   "remove <application-id> <contact-id>",
	Short: "Remove a contact from an application",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, kv store.KV) error {
			if err := tracker.New(kv).RemoveContact(ctx, args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed contact %s\n", args[1])
			return nil
		})
	},
}

var contactReq types.ContactRequest

func init() {
	f := contactAddCmd.Flags()
	f.StringVar(&contactReq.Name, "name", "", "Contact name")
	f.StringVar(&contactReq.Title, "title", "", "Job title")
	f.StringVar((*string)(&contactReq.Type), "type", "", "recruiter, hiring-manager, team-member or other (default other)")
	f.StringVar(&contactReq.Email, "email", "", "Email address")
	f.StringVar(&contactReq.Phone, "phone", "", "Phone number")
	f.StringVar(&contactReq.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&contactReq.Notes, "notes", "", "Free-form notes")
	_ = contactAddCmd.MarkFlagRequired("name")

	contactCmd.AddCommand(contactAddCmd, contactRemoveCmd)
	rootCmd.AddCommand(contactCmd)
}
