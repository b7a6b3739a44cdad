package dict

import "errors"

var (
	// ErrNilDict 对未分配的字典执行写操作
	ErrNilDict = errors.New("dict: dictionary is nil")
	// ErrEmptyKey 键不可为空串
	ErrEmptyKey = errors.New("dict: key is empty")
	// ErrNotFound 键不存在
	ErrNotFound = errors.New("dict: key not found")
	// ErrCollision 两个不同的键哈希到了同一个值 本实现只检测不化解
	ErrCollision = errors.New("dict: hash collision")
	// ErrNoSpace 扩容会超出WithMaxSize设定的上限
	ErrNoSpace = errors.New("dict: dictionary is full")
)
