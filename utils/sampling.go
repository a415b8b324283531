package utils

import "golang.org/x/exp/rand"

// SampleInts 从[0, n)中无放回地抽取k个不同的整数
// k大于n时返回全部n个整数的随机排列
func SampleInts(rng *rand.Rand, n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}

	perm := rng.Perm(n)
	if k > n {
		k = n
	}
	return perm[:k]
}

// Shuffle 原地随机打乱切片
func Shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
