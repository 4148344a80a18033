package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dwoz/relenv/pkg/paths"
	"github.com/dwoz/relenv/pkg/relocate"
)

func newRelocateCmd() *cobra.Command {
	var (
		root   string
		libDir string
	)

	cmd := &cobra.Command{
		Use:   "relocate <dir>",
		Short: MsgRelocateShort,
		Long:  MsgRelocateLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			platform := paths.CurrentPlatform()

			resolved, err := resolveRoot(root, platform)
			if err != nil {
				return err
			}
			if libDir == "" {
				libDir = paths.NewLayout(resolved, platform, "").LibDir()
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			log.Info().
				Str("dir", dir).
				Str("lib_dir", libDir).
				Bool("dry_run", dryRun).
				Msg("Relocating directory tree")

			count, err := relocate.Tree(relocate.New(), dir, libDir, !dryRun, resolved)
			if err != nil {
				return fmt.Errorf(MsgErrRelocate, dir, err)
			}

			out := cmd.OutOrStdout()
			if count == 0 {
				fmt.Fprintln(out, MsgNoBinaries)
			} else {
				fmt.Fprintf(out, MsgRelocateResult, count, dir)
			}
			if dryRun {
				fmt.Fprintln(out, MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", MsgFlagRoot)
	cmd.Flags().StringVar(&libDir, "libdir", "", MsgFlagLibDir)
	return cmd
}
