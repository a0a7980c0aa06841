// Package tree implements the L-tree and binary hash tree
// constructions shared by WOTS+ public-key compression, the HORST
// few-time-signature tree and the SPHINCS hyper-tree. It is generic
// over the node type and the two-argument, level-indexed mixing
// function so that the tree-reduction logic can be tested directly
// against plain integer values, independent of any particular hash
// implementation.
package tree

// Mix combines a left and right node at the given zero-indexed layer
// into their parent. The layer index lets callers pick a per-level
// mask pair, matching every H(x,y,i) call site in the specification.
type Mix[T any] func(left, right T, layer int) T

// Layers is the full sequence of layers produced by a tree
// construction: Layers[0] is the leaves, Layers[len(Layers)-1] is the
// single-element root layer.
type Layers[T any] [][]T

// Root returns the single node at the top of the tree.
func (l Layers[T]) Root() T {
	top := l[len(l)-1]
	return top[0]
}

// LTree builds the layer sequence for an arbitrary (not necessarily
// power-of-two) number of leaves: at each layer, pairs (2j, 2j+1) are
// combined with mix; an unpaired final node at an odd-length layer is
// promoted unchanged into the next layer. Terminates after
// ceil(log2(len(leaves))) reductions (or immediately if there is a
// single leaf).
func LTree[T any](mix Mix[T], leaves []T) Layers[T] {
	layer := append([]T(nil), leaves...)
	layers := Layers[T]{layer}
	for len(layer) > 1 {
		next := make([]T, 0, (len(layer)+1)/2)
		i := 0
		level := len(layers) - 1
		for ; i+1 < len(layer); i += 2 {
			next = append(next, mix(layer[i], layer[i+1], level))
		}
		if i < len(layer) {
			next = append(next, layer[i])
		}
		layer = next
		layers = append(layers, layer)
	}
	return layers
}

// HashTree is LTree restricted to a power-of-two leaf count: a full
// binary hash tree never needs the odd-layer promotion, but shares
// LTree's implementation, since a binary hash tree is just an L-tree
// whose every layer happens to have even length. leaves must have a
// power-of-two length; HashTree panics otherwise, since this is an
// internal invariant violation rather than user-facing input.
func HashTree[T any](mix Mix[T], leaves []T) Layers[T] {
	if len(leaves)&(len(leaves)-1) != 0 {
		panic("tree: HashTree requires a power-of-two number of leaves")
	}
	return LTree(mix, leaves)
}

// AuthPath returns, for each non-top layer, the sibling of the node at
// the current index (idx with bit 0 flipped), then halves idx for the
// next layer up. Its length equals the tree height.
func AuthPath[T any](layers Layers[T], idx int) []T {
	path := make([]T, 0, len(layers)-1)
	for _, layer := range layers[:len(layers)-1] {
		sibling := idx ^ 1
		path = append(path, layer[sibling])
		idx >>= 1
	}
	return path
}

// ConstructRoot folds an authentication path against a leaf and its
// index, reproducing the logic an honest AuthPath(tree, idx) call
// would have traversed: at step k, if idx is even, node =
// mix(node, path[k], k); else node = mix(path[k], node, k). The
// result equals the tree's root iff (leaf, path) was produced at
// position idx.
func ConstructRoot[T any](mix Mix[T], path []T, leaf T, idx int) T {
	node := leaf
	for k, sibling := range path {
		if idx&1 == 0 {
			node = mix(node, sibling, k)
		} else {
			node = mix(sibling, node, k)
		}
		idx >>= 1
	}
	return node
}
