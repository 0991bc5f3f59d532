package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hopinc/hop-go/pkg/hop"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage project members, tokens, secrets, and webhooks",
	}

	cmd.AddCommand(newProjectsMembersCommand())
	cmd.AddCommand(newProjectsTokensCommand())
	cmd.AddCommand(newProjectsSecretsCommand())
	cmd.AddCommand(newProjectsWebhooksCommand())

	return cmd
}

func newProjectsMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage project members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List project members",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			members, err := cli.Projects().ListMembers(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(members)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Username", "Email", "Role", "Joined")

			for _, m := range members {
				_ = table.Append(m.ID, m.Username, m.Email, m.Role.Name, formatTime(m.JoinedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "me",
		Short: "Show your membership in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			member, err := cli.Projects().GetCurrentMember(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(member)
			if handled {
				return err
			}

			fmt.Printf("%s (%s), role %s\n", member.Username, member.Email, member.Role.Name)

			return nil
		},
	})

	return cmd
}

func newProjectsTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage project tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List project tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			tokens, err := cli.Projects().ListTokens(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(tokens)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Token", "Flags", "Created")

			for _, token := range tokens {
				_ = table.Append(token.ID, token.Token, strconv.Itoa(token.Flags), formatTime(token.CreatedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	var flags int

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			token, err := cli.Projects().CreateToken(context.Background(), "", flags)
			if err != nil {
				return err
			}

			// The full secret is only shown once, at creation.
			fmt.Printf("Created token %s\n%s\n", token.ID, token.Token)

			return nil
		},
	}

	createCmd.Flags().IntVar(&flags, "flags", 0, "permission flags for the token")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete TOKEN_ID",
		Short: "Delete a project token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Projects().DeleteToken(context.Background(), "", args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted token %s\n", args[0])

			return nil
		},
	})

	return cmd
}

func newProjectsSecretsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage project secrets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List project secrets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			secrets, err := cli.Projects().ListSecrets(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(secrets)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Digest", "Created")

			for _, s := range secrets {
				_ = table.Append(s.ID, s.Name, s.Digest, formatTime(s.CreatedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Create or update a secret",
		Long: `Create or update a project secret.

The value is stored exactly as given. Reference it from deployment env
maps as ${NAME}.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return ErrSecretNameRequired
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			secret, err := cli.Projects().SetSecret(context.Background(), "", name, args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Set secret %s\n", secret.Name)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Projects().DeleteSecret(context.Background(), "", args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted secret %s\n", args[0])

			return nil
		},
	})

	return cmd
}

func newProjectsWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage project webhooks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List project webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			webhooks, err := cli.Projects().ListWebhooks(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(webhooks)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "URL", "Events", "Created")

			for _, w := range webhooks {
				_ = table.Append(w.ID, w.WebhookURL, strings.Join(w.Events, ", "), formatTime(w.CreatedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	var (
		webhookURL string
		events     []string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if webhookURL == "" {
				return ErrWebhookURLRequired
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			webhook, err := cli.Projects().CreateWebhook(context.Background(), "", &hop.WebhookCreateRequest{
				WebhookURL: webhookURL,
				Events:     events,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created webhook %s\nSigning secret: %s\n", webhook.ID, webhook.Secret)

			return nil
		},
	}

	createCmd.Flags().StringVar(&webhookURL, "url", "", "URL to deliver events to")
	createCmd.Flags().StringSliceVar(&events, "events", nil, "event names to subscribe to")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete WEBHOOK_ID",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Projects().DeleteWebhook(context.Background(), "", args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted webhook %s\n", args[0])

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "regenerate WEBHOOK_ID",
		Short: "Regenerate a webhook's signing secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			secret, err := cli.Projects().RegenerateWebhookSecret(context.Background(), "", args[0])
			if err != nil {
				return err
			}

			fmt.Printf("New signing secret: %s\n", secret)

			return nil
		},
	})

	return cmd
}
