package fanout

import "fmt"

// Partition splits n samples into k shard sizes. Every shard gets n/k samples
// and the remainder n%k goes to the last shard.
func Partition(n, k int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count %d", ErrInvalidArgument, n)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: worker count %d", ErrInvalidArgument, k)
	}

	base := n / k
	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
	}
	sizes[k-1] += n % k
	return sizes, nil
}
