package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fstabkv/config"
	"fstabkv/datastruct/dict"
	"fstabkv/fstab"
	"fstabkv/interface/datastruct"
	"fstabkv/logger"
)

var (
	inputPath  string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "fstabkv",
	Short: "给fstab条目追加设备对照注释",
	Long: `fstabkv 读取fstab 为UUID=或LABEL=开头的条目解析出实际设备
并以 #/dev/xxx 注释追加到行尾 其余行原样输出
对照表默认取自 /dev/disk/by-uuid 与 /dev/disk/by-label (xref)
也可以改用 lsblk -f 的输出 (lsblk)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return fmt.Errorf("init config: %w", err)
		}
		if err := logger.Init(config.Conf.LogConfig); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if inputPath == "" {
			inputPath = config.Conf.Fstab
		}
		if outputPath == "" {
			outputPath = config.Conf.Output
		}
		return validatePaths(inputPath, outputPath)
	},
	// 不带子命令时按xref处理 与老用法保持一致
	RunE: runXref,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "输入的fstab路径 (默认 /etc/fstab)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "输出文件 (默认标准输出)")
	rootCmd.AddCommand(xrefCmd)
	rootCmd.AddCommand(lsblkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// validatePaths 禁止直接写回/etc/fstab 也禁止输入输出同一文件
func validatePaths(in, out string) error {
	if out == "/etc/fstab" {
		return fmt.Errorf("refusing to write directly to /etc/fstab")
	}
	if out != "" && in == out {
		return fmt.Errorf("input file may not equal output file")
	}
	st, err := os.Stat(in)
	if err != nil {
		return fmt.Errorf("input %s: %w", in, err)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", in)
	}
	return nil
}

func newDict(label string) *dict.SortedDict {
	return dict.NewSortedDict(config.Conf.DictSize, label,
		dict.WithLogger(zap.L()),
		dict.WithMaxSize(config.Conf.DictMaxSize))
}

// rewriteFstab 把inputPath按字典重写到outputPath(空则标准输出)
func rewriteFstab(d datastruct.Dict) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer in.Close()
	var out io.Writer = os.Stdout
	var f *os.File
	if outputPath != "" {
		f, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputPath, err)
		}
		out = f
	}
	zap.L().Info("rewriting fstab",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int32("entries", d.Len()))
	if err := fstab.Rewrite(in, out, d, zap.L()); err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}
	// Close的错误不能丢 写满磁盘等故障在这里才暴露
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", outputPath, err)
		}
	}
	return nil
}
