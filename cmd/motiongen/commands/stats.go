package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

var (
	statsType         string
	statsMunicipality string
	statsYear         int
	statsJSON         bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Look up a single statistic",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsType, "type", "t", "", "statistic type (required)")
	statsCmd.Flags().StringVarP(&statsMunicipality, "municipality", "m", "karlstad", "municipality name")
	statsCmd.Flags().IntVarP(&statsYear, "year", "y", 0, "year (default: current year)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the full record as JSON")
	_ = statsCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer a.Close()

	t := statistics.Type(statsType)
	if _, ok := a.statistics.Registry().Config(t); !ok {
		err := fmt.Errorf("unknown statistic type %q (known: %v)", statsType, a.statistics.Registry().Types())
		logError("%v", err)
		return err
	}

	year := statsYear
	if year == 0 {
		year = time.Now().Year()
	}

	stat := a.statistics.FetchStatistic(cmd.Context(), t, year, statsMunicipality)

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stat)
	}

	fmt.Println(stat.Text)
	if stat.Trend != "" {
		fmt.Println(stat.Trend)
	}
	return nil
}
