package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diwise/mac-explorer/internal/pkg/application/explorer"
	"github.com/diwise/mac-explorer/internal/pkg/application/region"
	"github.com/diwise/mac-explorer/pkg/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/spf13/cobra"
)

const serviceName string = "mac-export"

type options struct {
	backend string
	outDir  string
	rect    region.Rectangle
}

func newRootCmd(ctx context.Context) *cobra.Command {
	opts := &options{}

	backend := env.GetVariableOrDefault(logging.GetFromContext(ctx), "BACKEND_URL", "http://localhost:5000")

	rootCmd := &cobra.Command{
		Use:          serviceName,
		Short:        "Export vendor reports from the mac sighting graph",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", backend, "base url of the graph query backend")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vendor report of a bounding box to a csv file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	exportCmd.Flags().Float64VarP(&opts.rect.North, "north", "n", 0, "northern latitude of the box")
	exportCmd.Flags().Float64VarP(&opts.rect.East, "east", "e", 0, "eastern longitude of the box")
	exportCmd.Flags().Float64VarP(&opts.rect.South, "south", "s", 0, "southern latitude of the box")
	exportCmd.Flags().Float64VarP(&opts.rect.West, "west", "w", 0, "western longitude of the box")
	exportCmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "directory to write the report to")
	for _, f := range []string{"north", "east", "south", "west"} {
		exportCmd.MarkFlagRequired(f)
	}

	identitiesCmd := &cobra.Command{
		Use:   "identities",
		Short: "List every known mac address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentities(cmd, opts)
		},
	}

	rootCmd.AddCommand(exportCmd, identitiesCmd)
	rootCmd.SetContext(ctx)

	return rootCmd
}

func runExport(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	log := logging.GetFromContext(ctx)

	box := region.ToGeoBox(opts.rect)

	r, err := explorer.ExportRegion(ctx, client.New(opts.backend), box)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path, err := r.Save(opts.outDir)
	if err != nil {
		return fmt.Errorf("could not save report: %w", err)
	}

	log.Info().Msgf("exported %d vendors", len(r.Rows))
	fmt.Fprintln(cmd.OutOrStdout(), path)

	return nil
}

func runIdentities(cmd *cobra.Command, opts *options) error {
	macs, err := client.New(opts.backend).KnownIdentities(cmd.Context())
	if err != nil {
		return fmt.Errorf("could not fetch mac addresses: %w", err)
	}

	for _, mac := range macs {
		fmt.Fprintln(cmd.OutOrStdout(), mac)
	}

	return nil
}

func main() {
	ctx, _ := logging.NewLogger(context.Background(), serviceName, buildinfo.SourceVersion())

	if err := newRootCmd(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
