package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/hopinc/hop-go/internal/constants"
	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewIgniteCommand creates the ignite command group.
func NewIgniteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignite",
		Short: "Manage deployments, containers, and gateways",
	}

	cmd.AddCommand(newIgniteDeploymentsCommand())
	cmd.AddCommand(newIgniteContainersCommand())
	cmd.AddCommand(newIgniteLogsCommand())
	cmd.AddCommand(newIgniteGatewaysCommand())

	return cmd
}

func newIgniteDeploymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"deployment", "deploy"},
		Short:   "Manage Ignite deployments",
	}

	cmd.AddCommand(newDeploymentsListCommand())
	cmd.AddCommand(newDeploymentsGetCommand())
	cmd.AddCommand(newDeploymentsCreateCommand())
	cmd.AddCommand(newDeploymentsDeleteCommand())

	return cmd
}

func newDeploymentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			deployments, err := cli.Ignite().ListDeployments(context.Background(), "")
			if err != nil {
				return err
			}

			handled, err := renderOutput(deployments)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Containers", "Image", "Created")

			for _, d := range deployments {
				_ = table.Append(d.ID, d.Name, strconv.Itoa(d.ContainerCount), d.Config.Image.Name, formatTime(d.CreatedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	}
}

func newDeploymentsGetCommand() *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "get DEPLOYMENT",
		Short: "Show one deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			var deployment *hop.Deployment
			if byName {
				deployment, err = cli.Ignite().GetDeploymentByName(context.Background(), "", args[0])
			} else {
				deployment, err = cli.Ignite().GetDeployment(context.Background(), args[0])
			}

			if err != nil {
				return err
			}

			handled, err := renderOutput(deployment)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", deployment.ID)
			_ = table.Append("Name", deployment.Name)
			_ = table.Append("Image", deployment.Config.Image.Name)
			_ = table.Append("Type", string(deployment.Config.Type))
			_ = table.Append("Restart Policy", string(deployment.Config.RestartPolicy))
			_ = table.Append("Containers", strconv.Itoa(deployment.ContainerCount))
			_ = table.Append("Created", formatTime(deployment.CreatedAt))

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&byName, "by-name", false, "look the deployment up by name instead of id")

	return cmd
}

func newDeploymentsCreateCommand() *cobra.Command {
	var (
		name          string
		image         string
		runtimeType   string
		restartPolicy string
		vcpu          float64
		ram           string
		env           map[string]string
		targetCount   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrDeploymentNameRequired
			}

			if image == "" {
				return ErrImageRequired
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			deployment, err := cli.Ignite().CreateDeployment(context.Background(), "", &hop.DeploymentConfig{
				Name:          name,
				Type:          hop.RuntimeType(runtimeType),
				Image:         hop.ImageConfig{Name: image},
				RestartPolicy: hop.RestartPolicy(restartPolicy),
				Resources:     hop.ContainerResources{VCPU: vcpu, RAM: ram},
				Env:           env,
				TargetCount:   targetCount,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created deployment %s (%s)\n", deployment.Name, deployment.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "deployment name")
	cmd.Flags().StringVar(&image, "image", "", "image to run")
	cmd.Flags().StringVar(&runtimeType, "type", string(hop.RuntimeTypePersistent), "runtime type (ephemeral, persistent, stateful)")
	cmd.Flags().StringVar(&restartPolicy, "restart", string(hop.RestartPolicyOnFailure), "restart policy (never, always, on-failure)")
	cmd.Flags().Float64Var(&vcpu, "vcpu", 0.5, "vCPU per container")
	cmd.Flags().StringVar(&ram, "ram", "512MB", "RAM per container")
	cmd.Flags().StringToStringVar(&env, "env", nil, "environment variables (key=value)")
	cmd.Flags().IntVar(&targetCount, "count", 0, "target container count")

	return cmd
}

func newDeploymentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DEPLOYMENT_ID",
		Short: "Delete a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Ignite().DeleteDeployment(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted deployment %s\n", args[0])

			return nil
		},
	}
}

func newIgniteContainersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "containers",
		Aliases: []string{"container"},
		Short:   "Manage containers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list DEPLOYMENT_ID",
		Short: "List a deployment's containers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			containers, err := cli.Ignite().ListContainers(context.Background(), args[0])
			if err != nil {
				return err
			}

			handled, err := renderOutput(containers)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "State", "Region", "Internal IP", "Created")

			for _, c := range containers {
				_ = table.Append(c.ID, string(c.State), c.Region, c.InternalIP, formatTime(c.CreatedAt))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create DEPLOYMENT_ID",
		Short: "Add a container to a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			container, err := cli.Ignite().CreateContainer(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Created container %s\n", container.ID)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop CONTAINER_ID",
		Short: "Stop a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Ignite().StopContainer(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Stopped container %s\n", args[0])

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete CONTAINER_ID",
		Short: "Delete a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Ignite().DeleteContainer(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted container %s\n", args[0])

			return nil
		},
	})

	return cmd
}

func newIgniteLogsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs CONTAINER_ID",
		Short: "Fetch container logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			logs, err := cli.Ignite().GetContainerLogs(context.Background(), args[0], limit)
			if err != nil {
				return err
			}

			handled, err := renderOutput(logs)
			if handled {
				return err
			}

			for _, line := range logs {
				fmt.Printf("%s [%s] %s\n", formatTime(line.Timestamp), line.Level, line.Message)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultLogLimit, "maximum number of log lines")

	return cmd
}

func newIgniteGatewaysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gateways",
		Aliases: []string{"gateway"},
		Short:   "Manage gateways",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list DEPLOYMENT_ID",
		Short: "List a deployment's gateways",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := createClient()
			if err != nil {
				return err
			}

			gateways, err := cli.Ignite().ListGateways(context.Background(), args[0])
			if err != nil {
				return err
			}

			handled, err := renderOutput(gateways)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Type", "Protocol", "Target Port", "Domain")

			for _, g := range gateways {
				domain := g.HopshDomain
				if domain == "" {
					domain = NotAvailable
				}

				_ = table.Append(g.ID, string(g.Type), g.Protocol, strconv.Itoa(g.TargetPort), domain)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}

			return nil
		},
	})

	var (
		gatewayType string
		gatewayName string
		protocol    string
		targetPort  int
	)

	createCmd := &cobra.Command{
		Use:   "create DEPLOYMENT_ID",
		Short: "Create a gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPort == 0 {
				return ErrGatewayTargetPort
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			gateway, err := cli.Ignite().CreateGateway(context.Background(), args[0], &hop.GatewayCreateRequest{
				Type:       hop.GatewayType(gatewayType),
				Name:       gatewayName,
				Protocol:   protocol,
				TargetPort: targetPort,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created gateway %s\n", gateway.ID)

			return nil
		},
	}

	createCmd.Flags().StringVar(&gatewayType, "type", string(hop.GatewayTypeExternal), "gateway type (external, internal)")
	createCmd.Flags().StringVar(&gatewayName, "name", "", "gateway name")
	createCmd.Flags().StringVar(&protocol, "protocol", "http", "gateway protocol")
	createCmd.Flags().IntVar(&targetPort, "port", 0, "container port to route to")

	cmd.AddCommand(createCmd)

	var domain string

	addDomainCmd := &cobra.Command{
		Use:   "add-domain GATEWAY_ID",
		Short: "Attach a custom domain to a gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if domain == "" {
				return ErrDomainRequired
			}

			cli, err := createClient()
			if err != nil {
				return err
			}

			err = cli.Ignite().AddDomain(context.Background(), args[0], domain)
			if err != nil {
				return err
			}

			fmt.Printf("Added domain %s to gateway %s\n", domain, args[0])

			return nil
		},
	}

	addDomainCmd.Flags().StringVar(&domain, "domain", "", "domain to attach")

	cmd.AddCommand(addDomainCmd)

	return cmd
}
