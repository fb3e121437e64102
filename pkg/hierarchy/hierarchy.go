// Package hierarchy строит деревья из плоских списков узлов со ссылкой на родителя.
//
// Ссылки родитель-потомок хранятся как обычные внешние ключи, поэтому обход
// не доверяет данным: каждый узел посещается не более одного раза.
package hierarchy

import "fmt"

// Item - узел с идентификатором и необязательной ссылкой на родителя.
type Item[K comparable] interface {
	NodeID() K
	NodeParentID() *K
}

type Node[K comparable, T Item[K]] struct {
	Item     T
	Children []*Node[K, T]
}

// Build собирает лес за O(n). Узлы без родителя и узлы, чей родитель
// отсутствует в списке, становятся корнями. Порядок детей совпадает
// с порядком во входном списке. Цикл разрывается: первый по порядку узел
// цикла отцепляется от родителя и становится корнем, так что каждый узел
// попадает в результат ровно один раз.
func Build[K comparable, T Item[K]](items []T) []*Node[K, T] {
	nodes := make(map[K]*Node[K, T], len(items))
	for _, item := range items {
		if _, ok := nodes[item.NodeID()]; ok {
			continue
		}
		nodes[item.NodeID()] = &Node[K, T]{Item: item}
	}

	roots := make([]*Node[K, T], 0)
	attached := make(map[K]struct{}, len(items))
	for _, item := range items {
		id := item.NodeID()
		if _, ok := attached[id]; ok {
			continue
		}
		attached[id] = struct{}{}

		node := nodes[id]
		parentID := item.NodeParentID()
		if parentID == nil || *parentID == id {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*parentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	reached := make(map[K]struct{}, len(nodes))
	var mark func(node *Node[K, T])
	mark = func(node *Node[K, T]) {
		if _, ok := reached[node.Item.NodeID()]; ok {
			return
		}
		reached[node.Item.NodeID()] = struct{}{}
		for _, child := range node.Children {
			mark(child)
		}
	}
	for _, root := range roots {
		mark(root)
	}

	for _, item := range items {
		id := item.NodeID()
		if _, ok := reached[id]; ok {
			continue
		}
		node := nodes[id]
		parent := nodes[*node.Item.NodeParentID()]
		parent.Children = detach(parent.Children, id)
		roots = append(roots, node)
		mark(node)
	}

	return roots
}

func detach[K comparable, T Item[K]](children []*Node[K, T], id K) []*Node[K, T] {
	result := children[:0]
	for _, child := range children {
		if child.Item.NodeID() != id {
			result = append(result, child)
		}
	}
	return result
}

// Subtree строит лес и возвращает поддерево с корнем rootID.
func Subtree[K comparable, T Item[K]](items []T, rootID K) (*Node[K, T], error) {
	var found *Node[K, T]
	Walk(Build[K](items), func(node *Node[K, T], _ int) {
		if found == nil && node.Item.NodeID() == rootID {
			found = node
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%v: %w", rootID, ErrNodeNotFound)
	}
	return found, nil
}

// Walk обходит лес в глубину, посещая каждый узел один раз.
func Walk[K comparable, T Item[K]](roots []*Node[K, T], fn func(node *Node[K, T], depth int)) {
	visited := make(map[K]struct{})
	var walk func(node *Node[K, T], depth int)
	walk = func(node *Node[K, T], depth int) {
		id := node.Item.NodeID()
		if _, ok := visited[id]; ok {
			return
		}
		visited[id] = struct{}{}

		fn(node, depth)
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
}

// Descendants возвращает всех потомков rootID в порядке обхода в ширину.
// Сам rootID в результат не входит. Завершается и при наличии цикла.
func Descendants[K comparable, T Item[K]](items []T, rootID K) ([]T, error) {
	children := make(map[K][]T, len(items))
	found := false
	for _, item := range items {
		if item.NodeID() == rootID {
			found = true
		}
		if parentID := item.NodeParentID(); parentID != nil && *parentID != item.NodeID() {
			children[*parentID] = append(children[*parentID], item)
		}
	}
	if !found {
		return nil, fmt.Errorf("%v: %w", rootID, ErrNodeNotFound)
	}

	visited := map[K]struct{}{rootID: {}}
	result := make([]T, 0)
	queue := []K{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range children[current] {
			id := child.NodeID()
			if _, ok := visited[id]; ok {
				continue
			}
			visited[id] = struct{}{}
			result = append(result, child)
			queue = append(queue, id)
		}
	}

	return result, nil
}

// Ancestors возвращает цепочку предков от прямого родителя до корня.
// Если цепочка замыкается, возвращается ErrCycle.
func Ancestors[K comparable, T Item[K]](items []T, id K) ([]T, error) {
	byID := index[K](items)
	current, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%v: %w", id, ErrNodeNotFound)
	}

	visited := map[K]struct{}{id: {}}
	result := make([]T, 0)
	for {
		parentID := current.NodeParentID()
		if parentID == nil {
			return result, nil
		}
		if _, ok := visited[*parentID]; ok {
			return result, fmt.Errorf("%v: %w", id, ErrCycle)
		}
		parent, ok := byID[*parentID]
		if !ok {
			// родитель вне списка, считаем узел корнем
			return result, nil
		}
		visited[*parentID] = struct{}{}
		result = append(result, parent)
		current = parent
	}
}

// Depth - число предков узла, корень имеет глубину 0.
func Depth[K comparable, T Item[K]](items []T, id K) (int, error) {
	ancestors, err := Ancestors[K](items, id)
	if err != nil {
		return 0, err
	}
	return len(ancestors), nil
}

// CheckReparent проверяет, что перенос id под newParentID не создаст цикл:
// новый родитель не может быть самим узлом или его потомком.
func CheckReparent[K comparable, T Item[K]](items []T, id K, newParentID *K) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == id {
		return fmt.Errorf("%v under itself: %w", id, ErrCycle)
	}

	byID := index[K](items)
	if _, ok := byID[*newParentID]; !ok {
		return fmt.Errorf("parent %v: %w", *newParentID, ErrNodeNotFound)
	}

	descendants, err := Descendants[K](items, id)
	if err != nil {
		return err
	}
	for _, d := range descendants {
		if d.NodeID() == *newParentID {
			return fmt.Errorf("%v under its descendant %v: %w", id, *newParentID, ErrCycle)
		}
	}
	return nil
}

func index[K comparable, T Item[K]](items []T) map[K]T {
	byID := make(map[K]T, len(items))
	for _, item := range items {
		byID[item.NodeID()] = item
	}
	return byID
}
