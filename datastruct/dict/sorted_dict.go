package dict

import (
	"fmt"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"

	"fstabkv/interface/datastruct"
	"fstabkv/lib/hash"
)

const (
	// minDictSize 字典最少分配的槽位数 实际分配数向上对齐到4的倍数
	minDictSize = 64
	// sentinelHash 顶端哨兵槽位的哈希 作为二分查找的上界
	sentinelHash = math.MaxUint32
)

// SortedDict 按键哈希升序存放键值对的字典
// 键 值 哈希三列并行数组以同一下标对齐 活跃槽位集中在数组高端
// [0, lower] 为空闲区 [lower+1, size-1] 为有序活跃区 检索走二分查找
// 容量不足时整体翻倍 哈希冲突只检测不化解(Put拒绝写入 Remove退化为线性扫描)
type SortedDict struct {
	label   string
	keys    []string  // 键列
	vals    []*string // 值列 nil表示有键无值
	hashes  []uint32  // 键的哈希 排序与检索键
	skeys   []uint32  // section哈希侧表 供ini类调用方使用 核心逻辑不读它
	size    int32     // 已分配槽位总数
	used    int32     // 已占用槽位数 含顶端哨兵
	lower   int32     // 空闲边界 最后一个保证为空的下标 -1表示已满
	info    int32     // 最近一次写入的槽位
	sorted  bool      // 有序区间标志 为false时检索前必须重排
	maxSize int32     // 容量上限 0不限制
	logger  *zap.Logger
}

var _ datastruct.Dict = (*SortedDict)(nil)

// Option 构造SortedDict的可选配置
type Option func(*SortedDict)

// WithLogger 指定字典内部使用的logger 默认为Nop
func WithLogger(l *zap.Logger) Option {
	return func(d *SortedDict) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxSize 限制字典可扩容到的最大槽位数 触顶后Put返回ErrNoSpace
func WithMaxSize(n int32) Option {
	return func(d *SortedDict) {
		if n > 0 {
			d.maxSize = n
		}
	}
}

// NewSortedDict 创建字典 size小于最小值时取最小值 并向上对齐到4的倍数
func NewSortedDict(size int32, label string, opts ...Option) *SortedDict {
	if size < minDictSize {
		size = minDictSize
	}
	if r := size % 4; r != 0 {
		size += 4 - r
	}
	d := &SortedDict{
		label:  label,
		keys:   make([]string, size),
		vals:   make([]*string, size),
		hashes: make([]uint32, size),
		skeys:  make([]uint32, size),
		size:   size,
		used:   1,
		lower:  size - 2,
		sorted: true,
		logger: zap.NewNop(),
	}
	d.hashes[size-1] = sentinelHash
	for _, opt := range opts {
		opt(d)
	}
	if d.maxSize > 0 && d.maxSize < size {
		d.maxSize = size
	}
	return d
}

// locate 在有序区间内二分查找hashu
// 命中返回(槽位下标, true) 未命中返回(新条目应当插入的位置, false)
// 表满或只剩一个空位时插入位置可落到数组低端 所以命中与否必须用标志位区分
// 而不能像负数编码那样从下标推断
// 命中只说明哈希相同 调用方必须再比对键串以排除冲突带来的假命中
func (d *SortedDict) locate(hashu uint32) (int32, bool) {
	if !d.sorted && d.used > 1 {
		d.createSortedList()
	}
	lo := d.lower
	if lo < 0 {
		lo = 0
	}
	hi := d.size - 1
	for lo <= hi {
		mid := (lo + hi) / 2
		h := d.hashes[mid]
		if hashu == h {
			return mid, true
		}
		if hashu < h {
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return lo, false
}

// Get 读取key的值 未找到时返回def
// 哈希命中但键串不同按未找到处理 返回的字符串归字典所有
func (d *SortedDict) Get(key string, def string) string {
	if d == nil || key == "" {
		return def
	}
	i, found := d.locate(hash.OneAtATime32(key))
	if !found || d.keys[i] != key {
		return def
	}
	if v := d.vals[i]; v != nil {
		return *v
	}
	return ""
}

// Lookup 读取key的值 第二个返回值区分键不存在与有键无值
func (d *SortedDict) Lookup(key string) (string, bool) {
	if d == nil || key == "" {
		return "", false
	}
	i, found := d.locate(hash.OneAtATime32(key))
	if !found || d.keys[i] != key {
		return "", false
	}
	if v := d.vals[i]; v != nil {
		return *v, true
	}
	return "", true
}

// GetBool 按值的首字符解释布尔量 TtYy1为真 FfTtYy01之外返回def
func (d *SortedDict) GetBool(key string, def bool) bool {
	v, ok := d.Lookup(key)
	if !ok || v == "" || !strings.ContainsRune("FfTtYy01", rune(v[0])) {
		return def
	}
	return strings.ContainsRune("TtYy1", rune(v[0]))
}

// IndexOf 返回key哈希所在槽位 未找到时返回 -(pos+1) 的负数编码
// pos为该哈希的插入位置 编码保证未命中恒为负数
// 命中不校验键串 调用方自行排除假命中
func (d *SortedDict) IndexOf(key string) int32 {
	if d == nil || key == "" {
		return -1
	}
	i, found := d.locate(hash.OneAtATime32(key))
	if !found {
		return -(i + 1)
	}
	return i
}

// Has 键是否存在 包括有键无值的条目
func (d *SortedDict) Has(key string) bool {
	if d == nil || key == "" {
		return false
	}
	i, found := d.locate(hash.OneAtATime32(key))
	return found && d.keys[i] == key
}

// Put 写入键值对 键已存在时就地更新值
func (d *SortedDict) Put(key string, val string) error {
	return d.put(key, &val)
}

// PutNone 写入只有键没有值的条目 与删除不同 键仍可被Has/Lookup找到
func (d *SortedDict) PutNone(key string) error {
	return d.put(key, nil)
}

func (d *SortedDict) put(key string, val *string) error {
	if d == nil {
		return ErrNilDict
	}
	if key == "" {
		return ErrEmptyKey
	}
	hashk := hash.OneAtATime32(key)
	pos, found := d.locate(hashk)
	if found {
		if d.keys[pos] != key {
			d.logger.Warn("hash collision, refusing to insert",
				zap.String("dict", d.label),
				zap.String("key", key),
				zap.String("existing", d.keys[pos]),
				zap.Uint32("hash", hashk))
			return ErrCollision
		}
		// 同键更新 覆盖值槽位即可 不动排序
		d.vals[pos] = copyVal(val)
		d.info = pos
		return nil
	}

	if d.used == d.size {
		if err := d.grow(); err != nil {
			return err
		}
		// 扩容把活跃区整体平移到了高端 重新定位插入点
		pos, _ = d.locate(hashk)
	}
	// 新条目应位于pos之前
	at := pos - 1
	// [lower+1, pos-1] 左移一位 在pos-1处腾出槽位
	copy(d.keys[d.lower:at], d.keys[d.lower+1:pos])
	copy(d.vals[d.lower:at], d.vals[d.lower+1:pos])
	copy(d.hashes[d.lower:at], d.hashes[d.lower+1:pos])
	d.keys[at] = key
	d.vals[at] = copyVal(val)
	d.hashes[at] = hashk
	d.info = at
	d.used++
	d.lower--
	return nil
}

func copyVal(val *string) *string {
	if val == nil {
		return nil
	}
	v := *val
	return &v
}

// Remove 删除键 空洞以下的条目整体上移填补 腾出的槽位清零
// 哈希命中但键串不同时退化为对活跃区的线性扫描 这是冲突时的兜底路径
func (d *SortedDict) Remove(key string) error {
	if d == nil {
		return ErrNilDict
	}
	if key == "" {
		return ErrEmptyKey
	}
	i, found := d.locate(hash.OneAtATime32(key))
	if !found {
		return ErrNotFound
	}
	if d.keys[i] != key {
		i = -1
		for k := d.lower + 1; k < d.size-1; k++ {
			if d.keys[k] == key {
				i = k
				break
			}
		}
		if i < 0 {
			d.logger.Debug("key not found after fallback scan",
				zap.String("dict", d.label), zap.String("key", key))
			return ErrNotFound
		}
	}
	// [lower+1, i-1] 右移一位 空闲边界上移
	copy(d.keys[d.lower+2:i+1], d.keys[d.lower+1:i])
	copy(d.vals[d.lower+2:i+1], d.vals[d.lower+1:i])
	copy(d.hashes[d.lower+2:i+1], d.hashes[d.lower+1:i])
	d.lower++
	d.keys[d.lower] = ""
	d.vals[d.lower] = nil
	d.hashes[d.lower] = 0
	d.used--
	return nil
}

// grow 容量翻倍 原有内容整体迁移到新数组高端 低端成为新的空闲区
func (d *SortedDict) grow() error {
	old := d.size
	if d.maxSize > 0 && old*2 > d.maxSize {
		d.logger.Error("cannot grow dictionary",
			zap.String("dict", d.label),
			zap.Int32("size", old),
			zap.Int32("max", d.maxSize))
		return ErrNoSpace
	}
	size := old * 2
	keys := make([]string, size)
	vals := make([]*string, size)
	hashes := make([]uint32, size)
	skeys := make([]uint32, size)
	copy(keys[old:], d.keys)
	copy(vals[old:], d.vals)
	copy(hashes[old:], d.hashes)
	copy(skeys, d.skeys) // 侧表不参与槽位对齐 保持原位
	d.keys, d.vals, d.hashes, d.skeys = keys, vals, hashes, skeys
	d.size = size
	d.lower += old
	d.logger.Debug("dictionary doubled",
		zap.String("dict", d.label), zap.Int32("from", old), zap.Int32("to", size))
	return nil
}

// Resort 对全部槽位按哈希升序重排并重建空闲边界
// 空槽位哈希为0 排序后自然沉到数组低端 活跃区回到高端连续区间
func (d *SortedDict) Resort() {
	if d == nil {
		return
	}
	d.createSortedList()
}

func (d *SortedDict) createSortedList() {
	if d.used > 1 {
		d.quicksort(0, d.size-1)
	}
	d.lower = -1
	for i := int32(0); i < d.size; i++ {
		if d.hashes[i] != 0 {
			d.lower = i - 1
			break
		}
	}
	d.sorted = true
}

// quicksort 双端分区交换排序 按哈希列比较 三列同步交换
func (d *SortedDict) quicksort(first, last int32) {
	if first >= last {
		return
	}
	pivot := d.hashes[first]
	i, j := first, last
	for i < j {
		for d.hashes[i] <= pivot && i < last {
			i++
		}
		for d.hashes[j] > pivot {
			j--
		}
		if i < j {
			d.swap(i, j)
		}
	}
	d.swap(first, j)
	d.quicksort(first, j-1)
	d.quicksort(j+1, last)
}

func (d *SortedDict) swap(i, j int32) {
	d.hashes[i], d.hashes[j] = d.hashes[j], d.hashes[i]
	d.keys[i], d.keys[j] = d.keys[j], d.keys[i]
	d.vals[i], d.vals[j] = d.vals[j], d.vals[i]
}

// Len 活跃键数 哨兵不计入
func (d *SortedDict) Len() int32 {
	if d == nil {
		return 0
	}
	return d.used - 1
}

func (d *SortedDict) IsEmpty() bool {
	return d == nil || d.used <= 1
}

// Size 已分配槽位总数
func (d *SortedDict) Size() int32 {
	if d == nil {
		return 0
	}
	return d.size
}

// Avail 剩余空闲槽位数
func (d *SortedDict) Avail() int32 {
	if d == nil {
		return 0
	}
	return d.size - d.used
}

// LastIndex 最近一次写入的槽位 仅供调用方做粗略观测
func (d *SortedDict) LastIndex() int32 {
	if d == nil {
		return -1
	}
	return d.info
}

// Label 字典的诊断标识
func (d *SortedDict) Label() string {
	if d == nil {
		return ""
	}
	return d.label
}

// ForEach 遍历活跃条目 有键无值的条目以空串回调
func (d *SortedDict) ForEach(consumer datastruct.Consumer) {
	if d == nil {
		return
	}
	for i := int32(0); i < d.size-1; i++ {
		if d.hashes[i] == 0 || d.keys[i] == "" {
			continue
		}
		v := ""
		if d.vals[i] != nil {
			v = *d.vals[i]
		}
		if !consumer(d.keys[i], v) {
			return
		}
	}
}

func (d *SortedDict) Keys() []string {
	if d == nil {
		return nil
	}
	result := make([]string, 0, d.Len())
	d.ForEach(func(key, val string) bool {
		result = append(result, key)
		return true
	})
	return result
}

// Clear 清空字典 回到初始容量
func (d *SortedDict) Clear() {
	if d == nil {
		return
	}
	*d = *NewSortedDict(0, d.label, WithLogger(d.logger), WithMaxSize(d.maxSize))
}

// Trim 压缩过度分配的空间 保留spare个空闲槽位(最少4 向上对齐到4的倍数)
// 空闲量不超过spare时不动
func (d *SortedDict) Trim(spare int32) {
	if d == nil {
		return
	}
	if spare < 4 {
		spare = 4
	} else if r := spare % 4; r != 0 {
		spare += 4 - r
	}
	if !d.sorted {
		d.createSortedList()
	}
	if d.lower+1 <= spare {
		return
	}
	nd := NewSortedDict(d.used+spare, d.label, WithLogger(d.logger), WithMaxSize(d.maxSize))
	to := nd.size - d.used
	copy(nd.keys[to:], d.keys[d.lower+1:])
	copy(nd.vals[to:], d.vals[d.lower+1:])
	copy(nd.hashes[to:], d.hashes[d.lower+1:])
	copy(nd.skeys, d.skeys)
	nd.used = d.used
	nd.lower = to - 1
	nd.info = d.info
	d.logger.Debug("dictionary trimmed",
		zap.String("dict", d.label), zap.Int32("from", d.size), zap.Int32("to", nd.size))
	*d = *nd
}

// Meta 输出字典的统计信息
func (d *SortedDict) Meta(w io.Writer) {
	if d == nil {
		fmt.Fprintln(w, "dictionary not defined")
		return
	}
	fmt.Fprintf(w, "dictionary name...:%s\n", d.label)
	fmt.Fprintf(w, "dictionary size...:%d\n", d.size)
	fmt.Fprintf(w, "dictionary used...:%d\n", d.used)
	fmt.Fprintf(w, "dictionary avail..:%d\n", d.size-d.used)
	fmt.Fprintf(w, "dictionary lower..:%d\n", d.lower)
}

// Dump 按槽位顺序输出活跃条目 有键无值的条目值显示为UNDEF
func (d *SortedDict) Dump(w io.Writer) {
	if d == nil {
		return
	}
	if d.IsEmpty() {
		fmt.Fprintf(w, "%s:empty dictionary\n", d.label)
		return
	}
	for i := int32(0); i < d.size-1; i++ {
		if d.keys[i] == "" {
			continue
		}
		val := "UNDEF"
		if d.vals[i] != nil {
			val = *d.vals[i]
		}
		fmt.Fprintf(w, "%.4d)[%20s]\t[%s]\n", i, d.keys[i], val)
	}
}
