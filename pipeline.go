package ballast

import "sync"

// task splits data into one contiguous chunk per worker and runs fn on every element
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	workersCount = max(DEFAULT_WORKERS, min(workersCount, len(data)))
	if workersCount == 1 {
		for i, d := range data {
			fn(i, d)
		}
		return
	}

	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
