package optimizer

// combinations lazily enumerates k-subsets of {0..n-1} in lexicographic
// order. Keeping it restartable and index-based bounds memory to O(k) no
// matter how large the candidate field grows.
type combinations struct {
	n, k    int
	indexes []int
	started bool
}

func newCombinations(n, k int) *combinations {
	return &combinations{n: n, k: k}
}

// next returns the next index combination, or false when exhausted. The
// returned slice is reused between calls; callers must not retain it.
func (c *combinations) next() ([]int, bool) {
	if c.k <= 0 || c.k > c.n {
		return nil, false
	}

	if !c.started {
		c.started = true
		c.indexes = make([]int, c.k)
		for i := range c.indexes {
			c.indexes[i] = i
		}
		return c.indexes, true
	}

	// Find the rightmost index that can still advance.
	i := c.k - 1
	for i >= 0 && c.indexes[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		return nil, false
	}

	c.indexes[i]++
	for j := i + 1; j < c.k; j++ {
		c.indexes[j] = c.indexes[j-1] + 1
	}
	return c.indexes, true
}
