// Package payout computes settlement results for finished rooms.
//
// The calculation is deterministic: the pooled B allocations are boosted by
// 1.5x, rounded to two decimal places, split evenly across the players with
// no intermediate rounding, and each player's share is added to their A
// allocation. All rounding uses round-half-to-even (banker's rounding).
package payout

import (
	"github.com/shopspring/decimal"

	"splitpot/internal/model"
)

// boostMultiplier is the factor applied to the pooled B allocations
var boostMultiplier = decimal.New(15, -1) // 1.5

// PlayerPayout is the computed result for a single player
type PlayerPayout struct {
	PlayerID    model.PlayerID
	DisplayName string
	Payout      decimal.Decimal
}

// Result holds the pool totals and per-player payouts, in input order
type Result struct {
	TotalBPool  decimal.Decimal
	BoostedPool decimal.Decimal
	Players     []PlayerPayout
}

// Payload returns the wire representation of the result for results_ready
// events and API responses
func (r *Result) Payload() model.ResultsReadyPayload {
	players := make([]model.PayoutInfo, len(r.Players))
	for i, p := range r.Players {
		players[i] = model.PayoutInfo{
			PlayerID:    p.PlayerID,
			DisplayName: p.DisplayName,
			Payout:      p.Payout.InexactFloat64(),
		}
	}
	return model.ResultsReadyPayload{
		TotalBPool:  r.TotalBPool.InexactFloat64(),
		BoostedPool: r.BoostedPool.InexactFloat64(),
		Players:     players,
	}
}

// Calculator computes payouts for a set of submitted players
type Calculator struct{}

// NewCalculator creates a new Calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate settles the given players. Every player must have both
// allocations set; finalize only runs once all have submitted, but the
// precondition is enforced here as well.
func (c *Calculator) Calculate(players []*model.Player) (*Result, error) {
	if len(players) == 0 {
		return nil, model.ErrNoPlayers
	}
	for _, p := range players {
		if p.AllocationA == nil || p.AllocationB == nil {
			return nil, model.ErrMissingAllocation
		}
	}

	totalB := int64(0)
	for _, p := range players {
		totalB += int64(*p.AllocationB)
	}

	totalBPool := decimal.NewFromInt(totalB)
	boostedPool := totalBPool.Mul(boostMultiplier).RoundBank(2)
	share := boostedPool.Div(decimal.NewFromInt(int64(len(players))))

	payouts := make([]PlayerPayout, len(players))
	for i, p := range players {
		total := decimal.NewFromInt(int64(*p.AllocationA)).Add(share).RoundBank(2)
		payouts[i] = PlayerPayout{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Payout:      total,
		}
	}

	return &Result{
		TotalBPool:  totalBPool,
		BoostedPool: boostedPool,
		Players:     payouts,
	}, nil
}
