package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/infrastructure/repository"
)

func TestStationBoardFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Board",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeMedium, 1),
			cartLine(env.croissant, enum.SizeMedium, 1),
		},
	})

	barista, err := env.kitchen.StationBoard(ctx, enum.StationBarista, nil)
	require.NoError(t, err)
	require.Len(t, barista, 1)
	assert.Equal(t, out.Order.ID, barista[0].OrderID)

	ready := enum.RecipeStatusReady
	none, err := env.kitchen.StationBoard(ctx, enum.StationBarista, &ready)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecipeStatusTransitionsAndOrderRollUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "RollUp",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeMedium, 1),
			cartLine(env.croissant, enum.SizeMedium, 1),
		},
	})
	require.Len(t, out.Order.Recipes, 2)

	first := out.Order.Recipes[0]
	second := out.Order.Recipes[1]

	// Starting one ticket puts the order in progress
	_, err := env.kitchen.UpdateRecipeStatus(ctx, first.ID, enum.RecipeStatusPreparing)
	require.NoError(t, err)
	order, err := env.kitchen.GetOrder(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusInProgress, order.Status)

	// Both tickets ready serves the order
	_, err = env.kitchen.UpdateRecipeStatus(ctx, first.ID, enum.RecipeStatusReady)
	require.NoError(t, err)
	_, err = env.kitchen.UpdateRecipeStatus(ctx, second.ID, enum.RecipeStatusReady)
	require.NoError(t, err)
	order, err = env.kitchen.GetOrder(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusServed, order.Status)

	// READY tickets cannot move backwards
	_, err = env.kitchen.UpdateRecipeStatus(ctx, first.ID, enum.RecipeStatusPreparing)
	require.Error(t, err)
}

func TestRecipeItemsSortedByPriority(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Croissant is submitted first, so it carries the lower priority
	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Priority",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			cartLine(env.croissant, enum.SizeMedium, 1),
			cartLine(env.latte, enum.SizeMedium, 1),
			cartLine(env.latte, enum.SizeSmall, 0),
		},
	})

	for _, r := range out.Order.Recipes {
		got, err := env.kitchen.GetRecipe(ctx, r.ID)
		require.NoError(t, err)
		for i := 1; i < len(got.Items); i++ {
			assert.LessOrEqual(t, got.Items[i-1].Priority, got.Items[i].Priority)
		}
	}
}

func TestDashboardStatsForDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.checkout(t, &CreateBillInput{
		CustomerName:    "Stats",
		PaymentMode:     enum.PaymentModeUPI,
		DiscountPercent: decimal.NewFromInt(10),
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeMedium, 2),
			cartLine(env.croissant, enum.SizeMedium, 1),
		},
	})

	dashboard := NewDashboardService(repository.NewAnalyticsRepository(env.db), nil)

	stats, err := dashboard.GetStats(ctx, time.Now(), PeriodDay)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BillCount)
	assert.EqualValues(t, 3, stats.ItemsSold)
	assert.Equal(t, "390", stats.GrossSales.String())
	assert.Equal(t, "414.18", stats.Revenue.String())
	assert.Equal(t, "414.18", stats.AverageBill.String())
	assert.Equal(t, 1, stats.PaymentSplit["UPI"])
	require.NotEmpty(t, stats.TopItems)
	assert.Equal(t, "Latte", stats.TopItems[0].ItemName)
}
