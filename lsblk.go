package main

import (
	"github.com/jmgilman/go/exec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fstabkv/fstab"
)

var lsblkCmd = &cobra.Command{
	Use:   "lsblk",
	Short: "用 lsblk -f 的输出建立对照表并重写fstab",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer zap.L().Sync()
		d := newDict("lsblk")
		execer := exec.New(exec.WithInheritEnv())
		if err := fstab.ScanLsblk(cmd.Context(), execer, d, zap.L()); err != nil {
			return err
		}
		return rewriteFstab(d)
	},
}
