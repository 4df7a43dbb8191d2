package container

// Set 保持插入顺序的集合
// 功能：基于双向链表和索引表，提供O(1)的查找、追加、删除与原位替换
// 说明：遍历顺序即插入顺序，保证仿真在相同随机种子下可复现
type Set[T comparable] struct {
	list  List[T]
	index map[T]*ListNode[T]
}

// NewSet 创建集合，可选初始元素（重复元素只保留第一次出现）
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{index: make(map[T]*ListNode[T], len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Len 元素数量
func (s *Set[T]) Len() int {
	return s.list.Len()
}

// Contains 是否包含元素
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Add 追加元素到末尾
// 返回：元素原本不存在时返回true
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	node := &ListNode[T]{Value: v}
	s.list.PushBack(node)
	s.index[v] = node
	return true
}

// Remove 删除元素
// 返回：元素存在时返回true
func (s *Set[T]) Remove(v T) bool {
	node, ok := s.index[v]
	if !ok {
		return false
	}
	s.list.Remove(node)
	delete(s.index, v)
	return true
}

// Replace 用新元素原位替换旧元素
// 功能：新元素占据旧元素在遍历顺序中的位置
// 参数：old-被替换元素，v-新元素
// 返回：old存在且v不存在时替换并返回true，否则不做修改并返回false
func (s *Set[T]) Replace(old, v T) bool {
	node, ok := s.index[old]
	if !ok || s.Contains(v) {
		return false
	}
	add := &ListNode[T]{Value: v}
	node.InsertBefore(add)
	s.list.Remove(node)
	delete(s.index, old)
	s.index[v] = add
	return true
}

// First 第一个元素
// 返回：元素和是否存在
func (s *Set[T]) First() (T, bool) {
	if node := s.list.First(); node != nil {
		return node.Value, true
	}
	var zero T
	return zero, false
}

// At 按遍历顺序获取第i个元素，越界时panic
func (s *Set[T]) At(i int) T {
	if i < 0 || i >= s.Len() {
		log.Panicf("set index %d out of range [0, %d)", i, s.Len())
	}
	node := s.list.First()
	for ; i > 0; i-- {
		node = node.Next()
	}
	return node.Value
}

// Values 按遍历顺序返回所有元素的副本
func (s *Set[T]) Values() []T {
	return s.list.Values()
}

// Each 按遍历顺序访问所有元素，回调中不得修改集合
func (s *Set[T]) Each(f func(v T)) {
	for node := s.list.First(); node != nil; node = node.Next() {
		f(node.Value)
	}
}
