package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tempora/tempora/internal/util"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	projects, err := newAPI(cfg).ListProjects(cmd.Context())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}

	fmt.Printf("%-14s %-24s %-9s %s\n", "ID", "Name", "Active", "Color")
	for _, p := range projects {
		active := "yes"
		if !p.Active {
			active = "no"
		}
		fmt.Printf("%-14s %-24s %-9s %s\n", p.ID, util.Truncate(p.Name, 24), active, p.Color)
	}
	return nil
}
