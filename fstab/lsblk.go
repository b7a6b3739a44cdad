package fstab

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmgilman/go/exec"
	"go.uber.org/zap"

	"fstabkv/interface/datastruct"
)

// treeGlyphs lsblk在子设备名前画的树形字符
const treeGlyphs = "│├└─` "

// LsblkEntry lsblk -f 输出中的一行设备信息
type LsblkEntry struct {
	Device string
	FSType string
	Label  string
	UUID   string
	Mount  string
}

// lsblkLayout 各列的起始位置 从表头行推出 按rune计数
// 树形字符是单宽rune 所以rune下标与显示列对齐
type lsblkLayout struct {
	fstype int
	label  int
	uuid   int
	mount  int
}

func parseLsblkHeader(line string) (lsblkLayout, bool) {
	rs := []rune(line)
	col := func(name string) int {
		i := strings.Index(line, name)
		if i < 0 {
			return -1
		}
		return len([]rune(line[:i]))
	}
	var l lsblkLayout
	if !strings.HasPrefix(strings.TrimSpace(line), "NAME") {
		return l, false
	}
	l.fstype = col("FSTYPE")
	l.label = col("LABEL")
	l.uuid = col("UUID")
	l.mount = col("MOUNTPOINT")
	if l.mount < 0 {
		l.mount = len(rs)
	}
	return l, l.fstype > 0 && l.label > l.fstype && l.uuid > l.label
}

// parseLsblkRow 按表头推出的列位置切出各字段
// 卷标整列空白表示设备没有卷标 带空格的卷标(如System Reserved)整列截取
func parseLsblkRow(l lsblkLayout, line string) (LsblkEntry, bool) {
	var e LsblkEntry
	rs := []rune(strings.TrimRight(line, " \t\r"))
	if len(rs) == 0 {
		return e, false
	}
	seg := func(from, to int) string {
		if from >= len(rs) {
			return ""
		}
		if to > len(rs) {
			to = len(rs)
		}
		return strings.TrimSpace(string(rs[from:to]))
	}
	e.Device = strings.TrimLeft(seg(0, l.fstype), treeGlyphs)
	e.FSType = seg(l.fstype, l.label)
	e.Label = seg(l.label, l.uuid)
	e.UUID = seg(l.uuid, l.mount)
	e.Mount = seg(l.mount, len(rs))
	return e, e.Device != ""
}

// ParseLsblkOutput 解析整份 lsblk -f 输出 把 卷标->设备 与 uuid->设备 写入字典
// 表头之前的内容忽略 单行写入失败只告警不中止 同一卷标再次出现按更新处理
func ParseLsblkOutput(out string, d datastruct.Dict, logger *zap.Logger) error {
	var layout lsblkLayout
	seen := false
	for _, line := range strings.Split(out, "\n") {
		if !seen {
			layout, seen = parseLsblkHeader(line)
			continue
		}
		e, ok := parseLsblkRow(layout, line)
		if !ok {
			continue
		}
		if e.Label != "" {
			if err := d.Put(e.Label, e.Device); err != nil {
				logger.Warn("store label entry failed",
					zap.String("label", e.Label), zap.String("dev", e.Device), zap.Error(err))
			}
		}
		if e.UUID != "" {
			if err := d.Put(e.UUID, e.Device); err != nil {
				logger.Warn("store uuid entry failed",
					zap.String("uuid", e.UUID), zap.String("dev", e.Device), zap.Error(err))
			}
		}
	}
	if !seen {
		return fmt.Errorf("lsblk output has no header line")
	}
	return nil
}

// ScanLsblk 执行 lsblk -f 并把结果灌入字典
func ScanLsblk(ctx context.Context, execer exec.Executor, d datastruct.Dict, logger *zap.Logger) error {
	res, err := execer.WithContext(ctx).Run("lsblk", "-f")
	if err != nil {
		return fmt.Errorf("run lsblk: %w", err)
	}
	return ParseLsblkOutput(res.Stdout, d, logger)
}
