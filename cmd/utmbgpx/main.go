// This file is part of trailgpx (https://github.com/spezifisch/trailgpx).
// Copyright (C) 2022-2025 spezifisch <spezifisch-7e6@below.fr> (https://github.com/spezifisch).
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, version 3 of the License.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Affero General Public License for more
// details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spezifisch/trailgpx/pkg/config"
	"github.com/spezifisch/trailgpx/pkg/utmb"
)

var cfg *config.Config

// newFetcher is swapped out in tests
var newFetcher = func(c *config.Config) utmb.Fetcher {
	return utmb.NewHTTPFetcher(c.Timeout, c.UserAgent)
}

var rootCmd = &cobra.Command{
	Use:   "utmbgpx <utmb_url> <output.gpx> [race_name]",
	Short: "Generate a GPX file with checkpoints from a UTMB race page",
	Long: `Download the route of a UTMB World Series race and write it as GPX track.
Checkpoints from the race page are added as waypoints with their distance
along the track.`,
	Example: `  utmbgpx https://translantau.utmb.world/races/tl120 TL120.gpx 'Trans Lantau 120'`,
	Args:    cobra.RangeArgs(2, 3),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return
		}
		log.SetLevel(cfg.LogLevel)
		return
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		tStart := time.Now()

		raceName := cfg.RaceName
		if len(args) > 2 {
			raceName = args[2]
		}
		kmlFile, _ := cmd.Flags().GetString("kml")

		res, err := utmb.Process(context.Background(), utmb.Options{
			URL:       args[0],
			Output:    args[1],
			RaceName:  raceName,
			KMLOutput: kmlFile,
			Fetcher:   newFetcher(cfg),
		})
		if err != nil {
			log.WithError(err).Error("processing failed")
			return err
		}

		timeTrack(tStart, "utmbgpx")

		if res.AnnotateErr != nil {
			return fmt.Errorf("gpx saved without checkpoints: %w", res.AnnotateErr)
		}
		log.Info("done!")
		return nil
	},
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Printf("> %s took %s", name, elapsed)
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.Flags().StringP("kml", "k", "", "also write the route and checkpoints as KML to this file")
	config.AddFlags(rootCmd.PersistentFlags())
	config.AddHTTPFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
