package modes

import (
	"runtime"
	"sync"
)

// xorBytes sets dst[i] = a[i] ^ b[i] for the shortest of the three and returns that length.
func xorBytes(dst, a, b []byte) int {
	n := min(len(dst), len(a), len(b))
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}

// forEachBlock calls fn for 0..n-1, split into contiguous ranges across
// goroutines when parallel is set. fn must only touch its own block.
func forEachBlock(n int, parallel bool, fn func(i int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if !parallel || workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	per := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += per {
		end := min(start+per, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

func numBlocks(n int) int {
	return (n + BlockSize - 1) / BlockSize
}

func block(data []byte, i int) []byte {
	return data[i*BlockSize : min((i+1)*BlockSize, len(data))]
}
