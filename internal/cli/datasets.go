package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukopendata/datagovuk/pkg/ckan"
)

// datasetsCommand creates the dataset exploration command.
func (c *CLI) datasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Explore the dataset catalogue",
	}

	cmd.AddCommand(c.datasetsListCommand())
	cmd.AddCommand(c.datasetsSearchCommand())
	cmd.AddCommand(c.datasetsShowCommand())
	cmd.AddCommand(c.datasetsResourcesCommand())

	return cmd
}

// datasetsListCommand creates the "datasets list" subcommand.
func (c *CLI) datasetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <organization>",
		Short: "List the datasets published by an organization",
		Long:  `List the datasets published by an organization. Accepts the slug ("department-for-transport") or the display name ("Department for Transport"). An unknown organization yields an empty listing.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newClient()
			prog := newProgress(c.Logger)

			spinner := newSpinner(cmd.Context(), "Fetching datasets")
			spinner.Start()
			datasets, err := client.DatasetsForOrganization(cmd.Context(), args[0])
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("fetch datasets: %w", err)
			}

			if len(datasets) == 0 {
				printInfo("No datasets found for %q", args[0])
				return nil
			}
			for _, ds := range datasets {
				fmt.Println(ds.Name + "  " + StyleDim.Render(ds.Title))
			}
			prog.done(fmt.Sprintf("Fetched %d datasets", len(datasets)))
			return nil
		},
	}
}

// datasetsSearchCommand creates the "datasets search" subcommand.
func (c *CLI) datasetsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search dataset names across the whole catalogue",
		Long:  `Search dataset names by case-insensitive substring match. The full name directory is fetched on first use, which can take a while on data.gov.uk.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			client := c.newClient()

			spinner := newSpinner(cmd.Context(), "Searching dataset directory")
			spinner.Start()
			matches, err := client.SearchPackages(cmd.Context(), query)
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("search datasets: %w", err)
			}

			if len(matches) == 0 {
				printInfo("No datasets match %q", query)
				return nil
			}
			for _, name := range matches {
				fmt.Println(name)
			}
			printDetail("%d matches", len(matches))
			return nil
		},
	}
}

// datasetsShowCommand creates the "datasets show" subcommand.
func (c *CLI) datasetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <dataset>",
		Short: "Show one dataset's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newClient()

			ds, err := client.Dataset(cmd.Context(), args[0])
			if errors.Is(err, ckan.ErrNotFound) {
				return fmt.Errorf("no dataset named %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("fetch dataset: %w", err)
			}

			fmt.Println(StyleTitle.Render(ds.Title))
			printKeyValue("Name", ds.Name)
			printKeyValue("Publisher", ds.Organization.Title)
			if ds.LicenseTitle != "" {
				printKeyValue("License", ds.LicenseTitle)
			}
			printKeyValue("Updated", ds.MetadataModified)
			printKeyValue("Files", fmt.Sprintf("%d", len(ds.Resources)))
			if ds.Notes != "" {
				printDetail("%s", ds.Notes)
			}
			return nil
		},
	}
}

// datasetsResourcesCommand creates the "datasets resources" subcommand.
func (c *CLI) datasetsResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources <dataset>",
		Short: "List one dataset's downloadable files, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newClient()

			resources, err := client.DatasetResources(cmd.Context(), args[0])
			if errors.Is(err, ckan.ErrNotFound) {
				return fmt.Errorf("no dataset named %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("fetch resources: %w", err)
			}
			if len(resources) == 0 {
				printInfo("Dataset %q has no downloadable files", args[0])
				return nil
			}

			for _, r := range resources {
				name := r.Name
				if name == "" {
					name = r.ID
				}
				fmt.Printf("%-10s %s\n", r.Format, StyleValue.Render(name))
				if r.Created != "" {
					printDetail("created %s", r.Created)
				}
				if r.URL != "" {
					fmt.Println("  " + StyleLink.Render(r.URL))
				}
			}
			printDetail("%d files", len(resources))
			return nil
		},
	}
}
