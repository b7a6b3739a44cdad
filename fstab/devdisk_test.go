package fstab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"fstabkv/datastruct/dict"
)

func TestParseDeviceLine(t *testing.T) {
	name, dev, ok := ParseDeviceLine(
		"lrwxrwxrwx. 1 root root 10 Apr 12 16:26 119a207e-0480-4298-907b-4f16a8c6316d -> ../../sdb7")
	assert.True(t, ok)
	assert.Equal(t, "119a207e-0480-4298-907b-4f16a8c6316d", name)
	assert.Equal(t, "sdb7", dev)

	// by-label 目录的行 链接名是卷标
	name, dev, ok = ParseDeviceLine(
		"lrwxrwxrwx. 1 root root 10 Apr 25 16:05 sdb9xfceHome -> ../../sdb5")
	assert.True(t, ok)
	assert.Equal(t, "sdb9xfceHome", name)
	assert.Equal(t, "sdb5", dev)

	// 无句点结尾的权限串(无SELinux)同样接受
	_, dev, ok = ParseDeviceLine(
		"lrwxrwxrwx 1 root root 10 Apr 25 16:05 EFI -> ../../sda1")
	assert.True(t, ok)
	assert.Equal(t, "sda1", dev)
}

func TestParseDeviceLineRejects(t *testing.T) {
	lines := []string{
		"",
		"total 0",
		"drwxr-xr-x. 2 root root 120 Apr 12 16:26 .",
		"-rw-r--r--. 1 root root 10 Apr 12 16:26 not-a-symlink",
		"lrwxrwxrwx. 1 root root 10 Apr 12 16:26 dangling",
	}
	for _, line := range lines {
		_, _, ok := ParseDeviceLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestParseDeviceListing(t *testing.T) {
	out := `total 0
lrwxrwxrwx. 1 root root 10 Apr 12 16:26 119a207e-0480-4298-907b-4f16a8c6316d -> ../../sdb7
lrwxrwxrwx. 1 root root 10 Apr 12 16:26 A6C4-9D25 -> ../../sdb1
some garbage line
`
	d := dict.NewSimpleDict()
	err := ParseDeviceListing(out, "/dev/disk/by-uuid", d, zap.NewNop())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), d.Len())
	assert.Equal(t, "sdb7", d.Get("119a207e-0480-4298-907b-4f16a8c6316d", ""))
	assert.Equal(t, "sdb1", d.Get("A6C4-9D25", ""))
}

func TestParseDeviceListingPutFailure(t *testing.T) {
	// 两个链接名哈希相同 第二条写入触发冲突 扫描应中止
	out := `lrwxrwxrwx. 1 root root 10 Apr 12 16:26 0tc8gpye -> ../../sda1
lrwxrwxrwx. 1 root root 10 Apr 12 16:26 5bpq7vbz -> ../../sda2
`
	d := dict.NewSortedDict(0, "uuid")
	err := ParseDeviceListing(out, "/dev/disk/by-uuid", d, zap.NewNop())
	assert.ErrorIs(t, err, dict.ErrCollision)
	assert.Equal(t, int32(1), d.Len())
}
