package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukopendata/datagovuk/pkg/ckan"
)

// orgsCommand creates the organization exploration command.
func (c *CLI) orgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "Explore publishing organizations",
	}

	cmd.AddCommand(c.orgsListCommand())
	cmd.AddCommand(c.orgsSearchCommand())
	cmd.AddCommand(c.orgsShowCommand())
	cmd.AddCommand(c.orgsBrowseCommand())

	return cmd
}

// orgsListCommand creates the "orgs list" subcommand.
func (c *CLI) orgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every organization in the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newClient()

			spinner := newSpinner(cmd.Context(), "Fetching organization directory")
			spinner.Start()
			orgs, err := client.Organizations(cmd.Context())
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("fetch organizations: %w", err)
			}

			for _, org := range orgs {
				fmt.Println(org)
			}
			printDetail("%d organizations", len(orgs))
			return nil
		},
	}
}

// orgsSearchCommand creates the "orgs search" subcommand.
func (c *CLI) orgsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search organizations by name",
		Long:  `Search organizations by case-insensitive substring match against the directory. An empty query lists every organization.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			client := c.newClient()

			matches, err := client.SearchOrganizations(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search organizations: %w", err)
			}
			if len(matches) == 0 {
				printInfo("No organizations match %q", query)
				return nil
			}

			for _, org := range matches {
				fmt.Println(org)
			}
			printDetail("%d matches", len(matches))
			return nil
		},
	}
}

// orgsShowCommand creates the "orgs show" subcommand.
func (c *CLI) orgsShowCommand() *cobra.Command {
	var withDatasets bool

	cmd := &cobra.Command{
		Use:   "show <organization>",
		Short: "Show one organization's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newClient()

			var (
				info *ckan.Organization
				err  error
			)
			if withDatasets {
				info, err = client.OrganizationWithDatasets(cmd.Context(), args[0])
			} else {
				info, err = client.OrganizationInfo(cmd.Context(), args[0])
			}
			if errors.Is(err, ckan.ErrNotFound) {
				return fmt.Errorf("no organization named %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("fetch organization: %w", err)
			}

			printOrganization(info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withDatasets, "datasets", false, "include the organization's datasets")
	return cmd
}

// printOrganization renders one organization record.
func printOrganization(info *ckan.Organization) {
	fmt.Println(StyleTitle.Render(info.Title))
	printKeyValue("Slug", info.Name)
	printKeyValue("Datasets", fmt.Sprintf("%d", info.PackageCount))
	if info.Created != "" {
		printKeyValue("Registered", info.Created)
	}
	if info.Description != "" {
		printKeyValue("About", info.Description)
	}
	for _, ds := range info.Datasets {
		printDetail("%s  %s", ds.Name, ds.Title)
	}
}
