package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dwoz/relenv/pkg/common"
	"github.com/dwoz/relenv/pkg/config"
	"github.com/dwoz/relenv/pkg/paths"
)

func newCheckCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Long:  MsgCheckLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := paths.CurrentPlatform()
			resolved, err := resolveRoot(root, platform)
			if err != nil {
				return err
			}

			pyVersion := ""
			meta, err := config.LoadMetadata(resolved)
			if err != nil {
				log.Debug().Err(err).Str("root", resolved).Msg("no environment metadata")
			} else {
				pyVersion = common.MajorVersion(meta.PyVersion)
				platform = paths.Platform(meta.Platform)
			}

			layout := paths.NewLayout(resolved, platform, pyVersion)
			settings := config.FromEnv()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", formatBold("Environment"))
			fmt.Fprintf(out, "  root:     %s\n", layout.Root)
			fmt.Fprintf(out, "  platform: %s\n", layout.Platform)
			if meta != nil {
				fmt.Fprintf(out, "  python:   %s\n", meta.PyVersion)
				fmt.Fprintf(out, "  relenv:   %s\n", meta.Version)
			}

			fmt.Fprintf(out, "\n%s\n", formatBold("Layout"))
			fmt.Fprintf(out, "  bin:           %s\n", layout.BinDir())
			fmt.Fprintf(out, "  lib:           %s\n", layout.LibDir())
			fmt.Fprintf(out, "  include:       %s\n", layout.IncludeDir())
			fmt.Fprintf(out, "  site-packages: %s\n", layout.SitePackagesDir())
			fmt.Fprintf(out, "  python:        %s\n", layout.PythonExe())

			fmt.Fprintf(out, "\n%s\n", formatBold("Trust store"))
			fmt.Fprintf(out, "  %s:  %s\n", config.EnvSSLCertDir, orUnset(settings.CertDir))
			fmt.Fprintf(out, "  %s: %s\n", config.EnvSSLCertFile, orUnset(settings.CertFile))

			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", MsgFlagRoot)
	return cmd
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}
