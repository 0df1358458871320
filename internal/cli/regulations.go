package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/veracomply/posture/internal/compliance"
)

var regulationsCmd = &cobra.Command{
	Use:   "regulations",
	Short: "List loaded regulation reference data",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		fmt.Printf("%d regulation(s) loaded:\n", catalog.Len())
		for _, reg := range catalog.All() {
			mapping, warns := compliance.ResolveRegulationMappings(reg)
			for _, w := range warns {
				log.Printf("%s: %s", reg.ID, w)
			}
			fmt.Printf("  %-12s %-30s %d article(s), %d question(s), %d mapped control(s)\n",
				reg.ID, reg.Name, len(reg.Articles), len(reg.Questions), mapping.ControlCount())
		}
		return nil
	},
}
