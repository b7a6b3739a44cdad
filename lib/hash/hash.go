package hash

// OneAtATime32 计算字符串的one-at-a-time哈希 (Bob Jenkins)
// 结果由每个字节及其顺序决定 字典用它作为排序与检索键
func OneAtATime32(key string) uint32 {
	var h uint32
	for i := 0; i < len(key); i++ {
		h += uint32(key[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
