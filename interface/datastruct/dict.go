package datastruct

// Consumer 用于遍历字典， 如果返回false则终止遍历
type Consumer func(key string, val string) bool

type Dict interface {
	Get(key string, def string) string
	Lookup(key string) (val string, exists bool)
	Len() int32
	Put(key string, val string) error
	Remove(key string) error
	Has(key string) bool
	IsEmpty() bool
	ForEach(consumer Consumer)
	Keys() []string
	Clear()
}
