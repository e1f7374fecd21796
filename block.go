package dfamin

import "slices"

// Block An immutable, sorted set of states the partition refiner considers equivalent. Splitting a
// block always produces new Block values, so a Block taken off the refinement worklist stays a valid
// snapshot while the partition keeps changing.
type Block struct {
	values []int
}

// NewBlock Returns a block holding a sorted copy of values. Duplicates are removed.
func NewBlock(values []int) *Block {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return &Block{values: slices.Compact(sorted)}
}

func (b *Block) GetArray() []int {
	return b.values
}

func (b *Block) Size() int {
	return len(b.values)
}

// Min Returns the smallest state in the block, or -1 if it is empty.
func (b *Block) Min() int {
	if len(b.values) == 0 {
		return -1
	}
	return b.values[0]
}

func (b *Block) Contains(state int) bool {
	_, ok := slices.BinarySearch(b.values, state)
	return ok
}

func (b *Block) Equals(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	return slices.Equal(b.values, other.values)
}
