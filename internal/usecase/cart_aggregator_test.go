package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pricecart/backend/internal/domain"
)

func TestAggregate(t *testing.T) {
	t.Run("per store totals and mixed total", func(t *testing.T) {
		summary := Aggregate(priced(t, "p_chicken_breast", "p_eggs_12", "p_bananas"))

		assert.Equal(t, map[domain.Store]float64{
			domain.StoreMaxi:    20.17,
			domain.StoreMetro:   23.38,
			domain.StoreProvigo: 23.17,
			domain.StoreSuperC:  20.77,
		}, summary.PerStoreTotal)
		assert.Equal(t, domain.StoreTotal{Store: domain.StoreMaxi, Total: 20.17}, summary.BestSingleStore)
		assert.Equal(t, domain.StoreTotal{Store: domain.StoreMetro, Total: 23.38}, summary.WorstSingleStore)
		assert.Equal(t, 19.77, summary.MixedTotal)
	})

	t.Run("unmatched items contribute nothing", func(t *testing.T) {
		with := Aggregate(priced(t, "p_milk_2l", "", "p_bread"))
		without := Aggregate(priced(t, "p_milk_2l", "p_bread"))

		assert.Equal(t, without, with)
	})

	t.Run("empty cart", func(t *testing.T) {
		summary := Aggregate(nil)

		assert.Len(t, summary.PerStoreTotal, domain.StoreCount)
		assert.Equal(t, domain.StoreTotal{Store: domain.StoreMaxi}, summary.BestSingleStore)
		assert.Equal(t, domain.StoreTotal{Store: domain.StoreMaxi}, summary.WorstSingleStore)
		assert.Zero(t, summary.MixedTotal)
	})

	t.Run("mixed total never exceeds best single store", func(t *testing.T) {
		ids := []string{"p_chicken_breast", "p_eggs_12", "p_greek_yogurt", "p_bananas", "p_milk_2l", "p_bread", "p_lettuce"}
		for n := 1; n <= len(ids); n++ {
			summary := Aggregate(priced(t, ids[:n]...))
			assert.LessOrEqual(t, summary.MixedTotal, summary.BestSingleStore.Total)
			assert.LessOrEqual(t, summary.BestSingleStore.Total, summary.WorstSingleStore.Total)
		}
	})
}
