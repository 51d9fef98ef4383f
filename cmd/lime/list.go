package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/f4ah6o/lime-go/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pages and assets the server would serve",
	Long: `List every page with the route that serves it, its title and an excerpt,
every static asset with its content type, and the files that can never be
served because requests for them route to the other directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		yamlOutput, _ := cmd.Flags().GetBool("yaml")

		cfg := loadConfig()
		c, err := catalog.New().Build(cfg)
		if err != nil {
			return err
		}

		switch {
		case jsonOutput:
			return c.WriteJSON(os.Stdout)
		case yamlOutput:
			return c.WriteYAML(os.Stdout)
		}
		c.Print(os.Stdout)
		log.Printf("%s", c.Summary())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("json", false, "Output the listing as JSON")
	listCmd.Flags().Bool("yaml", false, "Output the listing as YAML")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
