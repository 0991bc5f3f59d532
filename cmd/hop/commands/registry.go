package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRegistryCommand creates the registry command group.
func NewRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage container images",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "images",
		Aliases: []string{"list"},
		Short:   "List images in the project registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			images, err := cli.Registry().ListImages(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(images)
			if handled {
				return err
			}

			for _, image := range images {
				fmt.Println(image)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "manifests IMAGE",
		Short: "List an image's manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			manifests, err := cli.Registry().GetImageManifests(context.Background(), args[0])
			if err != nil {
				return err
			}

			handled, err := renderOutput(manifests)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Digest", "Tag", "Size", "Uploaded")

			for _, m := range manifests {
				tag := NotAvailable
				if m.Tag != nil {
					tag = *m.Tag
				}

				_ = table.Append(m.Digest.Digest, tag, strconv.FormatInt(m.Digest.Size, 10), formatTime(m.UploadedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete IMAGE",
		Short: "Delete an image and all its manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Registry().DeleteImage(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted image %s\n", args[0])

			return nil
		},
	})

	return cmd
}
