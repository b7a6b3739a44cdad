package fstab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"fstabkv/datastruct/dict"
)

// 列位置与真实 lsblk -f 输出一致 表头决定各列起点
const lsblkFixture = `NAME   FSTYPE LABEL           UUID                                 MOUNTPOINT
sda
├─sda1 ntfs   System Reserved 3C5A072D5A06E40C
├─sda2 ntfs                   01D17AB2A113AC20
└─sda3 ext4   xfceHome        119a207e-0480-4298-907b-4f16a8c6316d /home
sdb
└─sdb1 vfat   EFI             A6C4-9D25                            /boot/efi
`

func TestParseLsblkOutput(t *testing.T) {
	d := dict.NewSimpleDict()
	err := ParseLsblkOutput(lsblkFixture, d, zap.NewNop())
	assert.NoError(t, err)

	assert.Equal(t, "sda1", d.Get("System Reserved", ""))
	assert.Equal(t, "sda1", d.Get("3C5A072D5A06E40C", ""))
	assert.Equal(t, "sda2", d.Get("01D17AB2A113AC20", ""))
	assert.Equal(t, "sda3", d.Get("xfceHome", ""))
	assert.Equal(t, "sda3", d.Get("119a207e-0480-4298-907b-4f16a8c6316d", ""))
	assert.Equal(t, "sdb1", d.Get("EFI", ""))
	assert.Equal(t, "sdb1", d.Get("A6C4-9D25", ""))

	// 无卷标无uuid的整盘行不产生记录
	assert.False(t, d.Has("sda"))
	assert.False(t, d.Has("sdb"))
	assert.Equal(t, int32(7), d.Len())
}

func TestParseLsblkOutputNoHeader(t *testing.T) {
	d := dict.NewSimpleDict()
	err := ParseLsblkOutput("sda1 ext4 root 1234 /\n", d, zap.NewNop())
	assert.Error(t, err)
	assert.True(t, d.IsEmpty())
}

func TestParseLsblkHeader(t *testing.T) {
	l, ok := parseLsblkHeader("NAME   FSTYPE LABEL           UUID                                 MOUNTPOINT")
	assert.True(t, ok)
	assert.Equal(t, 7, l.fstype)
	assert.Equal(t, 14, l.label)
	assert.Equal(t, 30, l.uuid)
	assert.Equal(t, 67, l.mount)

	_, ok = parseLsblkHeader("sda1 ext4")
	assert.False(t, ok)
}

func TestParseLsblkRowTrailingMount(t *testing.T) {
	l, ok := parseLsblkHeader(strings.Split(lsblkFixture, "\n")[0])
	assert.True(t, ok)

	e, ok := parseLsblkRow(l, "└─sda3 ext4   xfceHome        119a207e-0480-4298-907b-4f16a8c6316d /home")
	assert.True(t, ok)
	assert.Equal(t, "sda3", e.Device)
	assert.Equal(t, "ext4", e.FSType)
	assert.Equal(t, "xfceHome", e.Label)
	assert.Equal(t, "119a207e-0480-4298-907b-4f16a8c6316d", e.UUID)
	assert.Equal(t, "/home", e.Mount)

	_, ok = parseLsblkRow(l, "")
	assert.False(t, ok)
}
