package dict

import "fstabkv/interface/datastruct"

// SimpleDict 基于内置map的无序字典 作为SortedDict的对照基准实现
type SimpleDict struct {
	m map[string]string
}

var _ datastruct.Dict = (*SimpleDict)(nil)

func NewSimpleDict() *SimpleDict {
	return &SimpleDict{
		m: make(map[string]string),
	}
}

func (s *SimpleDict) Get(key string, def string) string {
	if s == nil {
		panic("SimpleDict is nil")
	}
	if val, exists := s.m[key]; exists {
		return val
	}
	return def
}

func (s *SimpleDict) Lookup(key string) (val string, exists bool) {
	if s == nil {
		panic("SimpleDict is nil")
	}
	val, exists = s.m[key]
	return
}

func (s *SimpleDict) Len() int32 {
	if s == nil {
		panic("SimpleDict is nil")
	}
	return int32(len(s.m))
}

func (s *SimpleDict) Put(key string, val string) error {
	if s == nil {
		panic("SimpleDict is nil")
	}
	if key == "" {
		return ErrEmptyKey
	}
	s.m[key] = val
	return nil
}

func (s *SimpleDict) Remove(key string) error {
	if s == nil {
		panic("SimpleDict is nil")
	}
	if _, exists := s.m[key]; !exists {
		return ErrNotFound
	}
	delete(s.m, key)
	return nil
}

func (s *SimpleDict) Has(key string) bool {
	if s == nil {
		panic("SimpleDict is nil")
	}
	_, exists := s.m[key]
	return exists
}

func (s *SimpleDict) IsEmpty() bool {
	return s.Len() == 0
}

func (s *SimpleDict) ForEach(consumer datastruct.Consumer) {
	if s == nil {
		panic("SimpleDict is nil")
	}
	for key, val := range s.m {
		if continues := consumer(key, val); !continues {
			return
		}
	}
}

func (s *SimpleDict) Keys() []string {
	if s == nil {
		panic("SimpleDict is nil")
	}
	result := make([]string, 0, s.Len())
	for key := range s.m {
		result = append(result, key)
	}
	return result
}

func (s *SimpleDict) Clear() {
	if s == nil {
		panic("SimpleDict is nil")
	}
	*s = *NewSimpleDict()
}
