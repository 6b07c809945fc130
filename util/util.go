package util

import (
	"os"
	"sort"

	"golang.org/x/exp/constraints"
)

func RecreateOutputDir(dir string) {
	os.RemoveAll(dir)
	os.MkdirAll(dir, 0777)
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
