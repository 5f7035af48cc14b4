package analysis

import (
	"fmt"
	"sort"

	"golotto/domain/draw"
	"golotto/internal/config"

	"gonum.org/v1/gonum/stat/combin"
)

// ComboCount records how often a specific combination of numbers appeared
// together in historical draws
type ComboCount struct {
	Numbers []int `json:"numbers"`
	Count   int   `json:"count"`
}

// Temperature buckets numbers by how recently they were drawn
type Temperature struct {
	Hot  []int `json:"hot"`
	Warm []int `json:"warm"`
	Cold []int `json:"cold"`
}

// ClassifyTemperature buckets every pool number by draws-since-seen against
// the configured recency bins
func (t *Table) ClassifyTemperature(bins config.RecencyBins) Temperature {
	var temp Temperature
	for _, s := range t.Stats {
		switch {
		case s.DrawsSinceSeen <= bins.Hot:
			temp.Hot = append(temp.Hot, s.Number)
		case s.DrawsSinceSeen <= bins.Warm:
			temp.Warm = append(temp.Warm, s.Number)
		case s.DrawsSinceSeen > bins.Cold:
			temp.Cold = append(temp.Cold, s.Number)
		}
	}
	return temp
}

// CombinationCounts tabulates pair/triplet/... co-occurrence across history
// for each combination size enabled in the config. Results are filtered by
// the minimum count, sorted by descending count and truncated to top_range.
func CombinationCounts(history []draw.Draw, cfg config.AnalysisConfig) map[int][]ComboCount {
	sizes := enabledSizes(cfg.CombinationAnalysis)
	if len(sizes) == 0 {
		return nil
	}

	counts := make(map[int]map[string]ComboCount, len(sizes))
	for _, size := range sizes {
		counts[size] = make(map[string]ComboCount)
	}

	for _, d := range history {
		nums := d.Sorted()
		for _, size := range sizes {
			if size > len(nums) {
				continue
			}
			for _, idx := range combin.Combinations(len(nums), size) {
				combo := make([]int, size)
				for i, j := range idx {
					combo[i] = nums[j]
				}
				key := comboKey(combo)
				cc := counts[size][key]
				cc.Numbers = combo
				cc.Count++
				counts[size][key] = cc
			}
		}
	}

	out := make(map[int][]ComboCount, len(sizes))
	for _, size := range sizes {
		var list []ComboCount
		for _, cc := range counts[size] {
			if cc.Count >= cfg.MinCombinationCount {
				list = append(list, cc)
			}
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Count != list[j].Count {
				return list[i].Count > list[j].Count
			}
			return comboKey(list[i].Numbers) < comboKey(list[j].Numbers)
		})
		if len(list) > cfg.TopRange {
			list = list[:cfg.TopRange]
		}
		out[size] = list
	}
	return out
}

func enabledSizes(ca config.CombinationAnalysis) []int {
	var sizes []int
	for size, on := range map[int]bool{
		2: ca.Pairs,
		3: ca.Triplets,
		4: ca.Quadruplets,
		5: ca.Quintuplets,
		6: ca.Sixtuplets,
	} {
		if on {
			sizes = append(sizes, size)
		}
	}
	sort.Ints(sizes)
	return sizes
}

func comboKey(nums []int) string {
	key := ""
	for i, n := range nums {
		if i > 0 {
			key += "-"
		}
		key += fmt.Sprintf("%02d", n)
	}
	return key
}
