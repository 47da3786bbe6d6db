package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

var (
	motionTopic        string
	motionMunicipality string
	motionYear         int
	motionStats        []string
)

var motionCmd = &cobra.Command{
	Use:   "motion",
	Short: "Generate a motion from the command line",
	RunE:  runMotion,
}

func init() {
	motionCmd.Flags().StringVarP(&motionTopic, "topic", "t", "", "motion topic (required)")
	motionCmd.Flags().StringVarP(&motionMunicipality, "municipality", "m", "karlstad", "municipality name")
	motionCmd.Flags().IntVarP(&motionYear, "year", "y", 0, "year for statistics (default: current year)")
	motionCmd.Flags().StringSliceVarP(&motionStats, "stats", "s", nil, "statistic types to weave in (comma-separated)")
	_ = motionCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(motionCmd)
}

func runMotion(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer a.Close()

	if _, ok := statistics.MunicipalityID(motionMunicipality); !ok {
		err := fmt.Errorf("unknown municipality %q (known: %v)", motionMunicipality, statistics.Municipalities())
		logError("%v", err)
		return err
	}

	year := motionYear
	if year == 0 {
		year = time.Now().Year()
	}

	ctx := cmd.Context()

	var stats []statistics.Statistic
	for _, raw := range motionStats {
		t := statistics.Type(raw)
		if _, ok := a.statistics.Registry().Config(t); !ok {
			err := fmt.Errorf("unknown statistic type %q (known: %v)", raw, a.statistics.Registry().Types())
			logError("%v", err)
			return err
		}
		logInfo("Fetching %s for %s (%d)...", t, motionMunicipality, year)
		stats = append(stats, a.statistics.FetchStatistic(ctx, t, year, motionMunicipality))
	}

	logInfo("Generating motion about %q...", motionTopic)
	result, err := a.pipeline.Generate(ctx, motionTopic, stats)
	if err != nil {
		logError("generating motion: %v", err)
		return err
	}

	fmt.Println(result.Motion)
	return nil
}
