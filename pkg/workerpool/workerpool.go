// Package workerpool provides bounded fan-out helpers.
package workerpool

import (
	"context"
	"sync"
)

// Map runs fn for every key on at most workerCount goroutines and collects the results by key.
// Duplicate keys are resolved once. The first error cancels the remaining work and is returned.
func Map[K comparable, V any](
	ctx context.Context,
	workerCount int,
	keys []K,
	fn func(context.Context, K) (V, error),
) (map[K]V, error) {
	unique := make([]K, 0, len(keys))
	seen := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	results := make(map[K]V, len(unique))
	if len(unique) == 0 {
		return results, ctx.Err()
	}
	if workerCount <= 0 || workerCount > len(unique) {
		workerCount = len(unique)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	tasks := make(chan K, workerCount)

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case key, ok := <-tasks:
					if !ok {
						return
					}
					v, err := fn(ctx, key)
					mu.Lock()
					if err != nil {
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
						cancel()
						return
					}
					results[key] = v
					mu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, key := range unique {
			select {
			case <-ctx.Done():
				return
			case tasks <- key:
			}
		}
	}()

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
