package ta

import (
	"math"
	"sort"

	"pump_bot/internal/models"
)

// ClusterLevels жадно сливает пивоты в уровни: пивот попадает в кластер,
// если относительная дистанция до его скользящей средней цены меньше
// toleranceRatio. Цена кластера — среднее, взвешенное по числу касаний,
// чтобы уровень не уезжал за свежими точками.
//
// Скор = hits + lastTouchIndex/(len(pivots)+1): чаще и свежее — выше.
// Возвращает топ maxLevels по скору, цены округлены до 8 знаков.
func ClusterLevels(pivots []Pivot, toleranceRatio float64, maxLevels int) []models.SRLevel {
	if len(pivots) == 0 || maxLevels <= 0 {
		return nil
	}

	type cluster struct {
		price   float64
		hits    int
		lastIdx int
	}

	clusters := make([]*cluster, 0, 8)
	for _, p := range pivots {
		placed := false
		for _, c := range clusters {
			if math.Abs(p.Price-c.price)/math.Max(1e-9, c.price) < toleranceRatio {
				c.price = (c.price*float64(c.hits) + p.Price) / float64(c.hits+1)
				c.hits++
				if p.Index > c.lastIdx {
					c.lastIdx = p.Index
				}
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, &cluster{price: p.Price, hits: 1, lastIdx: p.Index})
		}
	}

	total := float64(len(pivots) + 1)
	score := func(c *cluster) float64 {
		return float64(c.hits) + float64(c.lastIdx)/total
	}
	sort.Slice(clusters, func(i, j int) bool { return score(clusters[i]) > score(clusters[j]) })

	if maxLevels > len(clusters) {
		maxLevels = len(clusters)
	}
	out := make([]models.SRLevel, 0, maxLevels)
	for _, c := range clusters[:maxLevels] {
		out = append(out, models.SRLevel{
			Price:          math.Round(c.price*1e8) / 1e8,
			Hits:           c.hits,
			LastTouchIndex: c.lastIdx,
		})
	}
	return out
}
