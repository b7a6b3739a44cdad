package fstab

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"fstabkv/interface/datastruct"
)

// fstab条目的6个字段 设备 挂载点 文件系统 选项 dump fsck
const fstabFields = 6

// Rewrite 把r中的fstab逐行拷到w
// UUID=或LABEL=开头且字段完整的行会重排列宽 并以 #/dev/xxx 追加对照出的设备名
// 其余行原样拷贝 设备名来自字典 key为UUID或卷标
func Rewrite(r io.Reader, w io.Writer, d datastruct.Dict, logger *zap.Logger) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		work := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(work, "LABEL="):
			if !rewriteEntry(w, work, d, "LABEL=", "not found", logger) {
				fmt.Fprintln(w, line)
			}
		case strings.HasPrefix(work, "UUID="):
			if !rewriteEntry(w, work, d, "UUID=", "*not found", logger) {
				fmt.Fprintln(w, line)
			}
		default:
			fmt.Fprintln(w, line)
		}
	}
	return scanner.Err()
}

// rewriteEntry 重排一条fstab记录 字段不完整时返回false让调用方原样输出
func rewriteEntry(w io.Writer, work string, d datastruct.Dict, prefix, def string, logger *zap.Logger) bool {
	fields := strings.Fields(work)
	if len(fields) != fstabFields {
		return false
	}
	key := strings.TrimPrefix(fields[0], prefix)
	dev := d.Get(key, def)
	if dev == def {
		logger.Warn("no device match", zap.String("key", key))
	}
	fmt.Fprintf(w, "%-42s %-25s %-7s %s\t%s %s #/dev/%s\n",
		fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], dev)
	return true
}
