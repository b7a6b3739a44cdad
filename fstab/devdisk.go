package fstab

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/jmgilman/go/exec"
	"go.uber.org/zap"

	"fstabkv/interface/datastruct"
)

// symlinkHead /dev/disk/by-uuid 与 by-label 目录下的有效行都是符号链接
const symlinkHead = "lrwxrwxrwx"

// ParseDeviceLine 解析 ls -l /dev/disk/by-uuid (或by-label) 输出的一行
// 形如 lrwxrwxrwx. 1 root root 10 Apr 12 16:26 119a207e-...-4f16a8c6316d -> ../../sdb7
// 返回链接名(uuid或label)与目标设备名(sdb7)
func ParseDeviceLine(line string) (name, dev string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, symlinkHead) {
		return "", "", false
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "->" && i > 0 && i+1 < len(fields) {
			name = fields[i-1]
			dev = path.Base(fields[i+1])
			return name, dev, name != "" && dev != "" && dev != "." && dev != "/"
		}
	}
	return "", "", false
}

// ParseDeviceListing 解析整份 ls -l 输出 把 链接名->设备名 写入字典
// 无法解析的行直接跳过 写入失败(包括哈希冲突)则中止扫描
func ParseDeviceListing(out, dir string, d datastruct.Dict, logger *zap.Logger) error {
	for _, line := range strings.Split(out, "\n") {
		name, dev, ok := ParseDeviceLine(line)
		if !ok {
			continue
		}
		if err := d.Put(name, dev); err != nil {
			logger.Error("store device entry failed",
				zap.String("key", name), zap.String("dev", dev), zap.Error(err))
			return fmt.Errorf("store %q: %w", name, err)
		}
		logger.Debug("device entry",
			zap.String("dir", dir), zap.String("key", name), zap.String("dev", dev))
	}
	return nil
}

// ScanDevDisk 列出dir下的符号链接并灌入字典
func ScanDevDisk(ctx context.Context, execer exec.Executor, dir string, d datastruct.Dict, logger *zap.Logger) error {
	res, err := execer.WithContext(ctx).Run("ls", "-l", dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	return ParseDeviceListing(res.Stdout, dir, d, logger)
}
