package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPipeCommand creates the pipe command group.
func NewPipeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Manage streaming rooms",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rooms",
		Short: "List pipe rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			rooms, err := cli.Pipe().ListRooms(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(rooms)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Ingest", "Delivery", "State")

			for _, room := range rooms {
				_ = table.Append(room.ID, room.Name, room.IngestProtocol, strings.Join(room.DeliveryProtocols, ", "), room.State)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	var (
		name      string
		ingest    string
		delivery  []string
		ephemeral bool
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pipe room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrRoomNameRequired
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			room, err := cli.Pipe().CreateRoom(context.Background(), "", &hop.RoomCreateRequest{
				Name:              name,
				IngestProtocol:    ingest,
				DeliveryProtocols: delivery,
				Ephemeral:         ephemeral,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created room %s\nJoin token: %s\n", room.ID, room.JoinToken)

			return nil
		},
	}

	createCmd.Flags().StringVar(&name, "name", "", "room name")
	createCmd.Flags().StringVar(&ingest, "ingest", "rtmp", "ingest protocol")
	createCmd.Flags().StringSliceVar(&delivery, "delivery", []string{"webrtc"}, "delivery protocols")
	createCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "tear the room down when the stream ends")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ROOM_ID",
		Short: "Delete a pipe room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Pipe().DeleteRoom(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted room %s\n", args[0])

			return nil
		},
	})

	return cmd
}
