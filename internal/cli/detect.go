package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vision-hud/internal/container"
	"vision-hud/internal/logger"
)

var detectOutput string

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Detect edges on a single image and optionally save the overlay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}

		detector, err := container.NewDetector(cfg)
		if err != nil {
			return err
		}

		result, err := container.NewDetectService(cfg, detector).DetectImage(cmd.Context(), data)
		if err != nil {
			return err
		}

		if detectOutput != "" {
			if err := os.WriteFile(detectOutput, result.Highlighted, 0o644); err != nil {
				return fmt.Errorf("write overlay: %w", err)
			}
			logger.WithField("path", detectOutput).Info("overlay saved")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%dx%d: %d vertices\n",
			result.Width, result.Height, result.Vertices.Count())
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "", "path to write the PNG overlay")
	rootCmd.AddCommand(detectCmd)
}
