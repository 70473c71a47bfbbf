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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spezifisch/trailgpx/pkg/config"
	"github.com/spezifisch/trailgpx/pkg/gpxfile"
	"github.com/spezifisch/trailgpx/pkg/mocktime"
)

func basicOrAdvancedArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 && len(args) != 5 {
		return fmt.Errorf("accepts 2 args (basic mode) or 5 args (advanced mode), received %d", len(args))
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "gpxmocktime <input_gpx> <output_gpx> [<mockup_time_start> <mockup_speed_meters_per_second> <track_name>]",
	Short: "Add mockup timestamps to an untimed GPX track",
	Long: `Basic mode stamps all track points one second apart starting at 9999-12-15.
Advanced mode starts at the given time and walks the track at a constant
speed in meters per second, renaming the tracks to track_name.

Arguments starting with a dash are read as flags. Put -- in front of the
arguments to pass them anyway.`,
	Example: `  gpxmocktime 2025HK100.gpx hk100-basic.gpx
  gpxmocktime 2025HK100.gpx hk100-mockup.gpx '2025-01-01 08:08:01 +08:00' 1.38 'HK100 mockup'
  gpxmocktime -- -route.gpx out.gpx '2025-01-01 08:08:01 +08:00' 1.38 'HK100 mockup'`,
	Args: basicOrAdvancedArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		log.SetLevel(cfg.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		input, output := args[0], args[1]

		g, err := gpxfile.Load(input)
		if err != nil {
			log.WithError(err).Error("could not load gpx")
			return err
		}

		if len(args) == 5 {
			start, err := mocktime.ParseStart(args[2])
			if err != nil {
				return err
			}
			speed, err := mocktime.ParseSpeed(args[3])
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"start": start,
				"speed": speed,
			}).Info("[advanced] processing mockup time")
			if _, err = mocktime.ApplySpeed(g, start, speed, args[4]); err != nil {
				return err
			}
		} else {
			reverse, _ := cmd.Flags().GetBool("reverse")
			log.WithField("reverse", reverse).Info("[basic] processing mockup time")
			mocktime.ApplyBasic(g, &mocktime.Clock{}, reverse)
		}

		n, err := gpxfile.Save(output, g)
		if err != nil {
			log.WithError(err).Error("could not save gpx")
			return err
		}
		log.Infof("wrote %d bytes to new gpx %s", n, output)
		return nil
	},
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.Flags().BoolP("reverse", "r", false, "count timestamps down instead of up (basic mode)")
	config.AddFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
