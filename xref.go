package main

import (
	"github.com/jmgilman/go/exec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fstabkv/config"
	"fstabkv/fstab"
)

var xrefCmd = &cobra.Command{
	Use:   "xref",
	Short: "用 /dev/disk/by-uuid 与 by-label 建立对照表并重写fstab",
	RunE:  runXref,
}

func runXref(cmd *cobra.Command, args []string) error {
	defer zap.L().Sync()
	d := newDict("devdisk")
	execer := exec.New(exec.WithInheritEnv())
	ctx := cmd.Context()
	if err := fstab.ScanDevDisk(ctx, execer, config.Conf.ByUUIDDir, d, zap.L()); err != nil {
		return err
	}
	if err := fstab.ScanDevDisk(ctx, execer, config.Conf.ByLabelDir, d, zap.L()); err != nil {
		return err
	}
	return rewriteFstab(d)
}
