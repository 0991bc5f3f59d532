package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hopinc/hop-go/internal/constants"
	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewChannelsCommand creates the channels command group.
func NewChannelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "channels",
		Aliases: []string{"channel"},
		Short:   "Manage realtime channels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			channels, err := cli.Channels().List(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(channels)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Type", "State", "Created")

			for _, c := range channels {
				state, _ := json.Marshal(c.State)
				_ = table.Append(c.ID, string(c.Type), truncate(string(state), constants.MaxStateDisplayLength), formatTime(c.CreatedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	var (
		channelType string
		channelID   string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			channel, err := cli.Channels().Create(context.Background(), "", hop.ChannelType(channelType), channelID, nil)
			if err != nil {
				return err
			}

			fmt.Printf("Created channel %s (%s)\n", channel.ID, channel.Type)

			return nil
		},
	}

	createCmd.Flags().StringVar(&channelType, "type", string(hop.ChannelTypePrivate), "channel type (private, public, unprotected)")
	createCmd.Flags().StringVar(&channelID, "id", "", "channel id (assigned by the platform when omitted)")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete CHANNEL_ID",
		Short: "Delete a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Channels().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted channel %s\n", args[0])

			return nil
		},
	})

	var (
		event   string
		payload string
	)

	publishCmd := &cobra.Command{
		Use:   "publish CHANNEL_ID",
		Short: "Publish a message to a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if event == "" {
				return ErrEventNameRequired
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			var data any
			if payload != "" {
				err = json.Unmarshal([]byte(payload), &data)
				if err != nil {
					return fmt.Errorf("parsing payload: %w", err)
				}
			}

			err = cli.Channels().PublishMessage(context.Background(), args[0], event, data)
			if err != nil {
				return err
			}

			fmt.Printf("Published %s to %s\n", event, args[0])

			return nil
		},
	}

	publishCmd.Flags().StringVar(&event, "event", "", "event name")
	publishCmd.Flags().StringVar(&payload, "data", "", "JSON payload")
	cmd.AddCommand(publishCmd)

	cmd.AddCommand(newChannelTokensCommand())

	return cmd
}

func newChannelTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage channel tokens",
	}

	var state string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a channel token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			var stateMap map[string]any
			if state != "" {
				err = json.Unmarshal([]byte(state), &stateMap)
				if err != nil {
					return fmt.Errorf("parsing state: %w", err)
				}
			}

			token, err := cli.Channels().CreateToken(context.Background(), "", stateMap)
			if err != nil {
				return err
			}

			fmt.Printf("Created channel token %s\n", token.ID)

			return nil
		},
	}

	createCmd.Flags().StringVar(&state, "state", "", "initial token state as JSON")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get TOKEN",
		Short: "Show a channel token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			token, err := cli.Channels().GetToken(context.Background(), args[0])
			if err != nil {
				return err
			}

			handled, err := renderOutput(token)
			if handled {
				return err
			}

			state, _ := json.Marshal(token.State)
			fmt.Printf("%s online=%t state=%s\n", token.ID, token.IsOnline, state)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "subscribe CHANNEL_ID TOKEN",
		Short: "Subscribe a token to a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Channels().SubscribeToken(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Subscribed %s to %s\n", args[1], args[0])

			return nil
		},
	})

	return cmd
}
