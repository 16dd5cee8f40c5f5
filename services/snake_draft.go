package services

import (
	"fantasy-draft/models"
)

// TierPools holds one ranked asset pool per tier; index 0 is Tier1.
type TierPools [models.TierCount][]models.Asset

// Pool returns the pool for tier t.
func (p TierPools) Pool(t models.Tier) []models.Asset {
	if !t.Valid() {
		return nil
	}
	return p[int(t)-1]
}

// Size is the total number of assets across all tiers.
func (p TierPools) Size() int {
	n := 0
	for _, pool := range p {
		n += len(pool)
	}
	return n
}

// RoundTier maps a 1-based round to the tier drafted in it: round 1 drafts
// Tier4, round 4 drafts Tier1.
func RoundTier(round int) models.Tier {
	return models.Tier(models.TierCount - round + 1)
}

// RoundReversed is the snake rule: odd rounds run in draft-position order,
// even rounds run in reverse.
func RoundReversed(round int) bool {
	return round%2 == 0
}

// RoundOrder returns participants in the order they pick in the given round.
// participants must already be sorted by ascending draft position.
func RoundOrder(participants []models.Participant, round int) []models.Participant {
	order := make([]models.Participant, len(participants))
	copy(order, participants)
	if RoundReversed(round) {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return order
}

// ExecuteSnakeDraft produces every pick of a four round snake draft. It does
// no I/O and returns the same picks, in the same order, for the same input.
// Picks carry no ID; the writer assigns them.
//
// When a pool is shorter than the participant list the trailing participants
// of that round get no pick.
func ExecuteSnakeDraft(eventID string, participants []models.Participant, pools TierPools) ([]models.Pick, error) {
	if err := validatePools(eventID, pools); err != nil {
		return nil, err
	}

	picks := make([]models.Pick, 0, min(pools.Size(), len(participants)*models.TierCount))
	for round := 1; round <= models.TierCount; round++ {
		tier := RoundTier(round)
		pool := pools.Pool(tier)
		order := RoundOrder(participants, round)
		for i, p := range order[:RoundCapacity(len(participants), pools, round)] {
			picks = append(picks, models.Pick{
				EventID:       eventID,
				ParticipantID: p.ID,
				AssetID:       pool[i].ID,
				Round:         round,
				Tier:          tier,
				Overall:       len(picks) + 1,
			})
		}
	}
	return picks, nil
}

// RoundCapacity is the number of picks made in round: one per participant
// while the round's pool lasts.
func RoundCapacity(participants int, pools TierPools, round int) int {
	return min(participants, len(pools.Pool(RoundTier(round))))
}

// DueParticipant resolves a 1-based overall pick cursor to the participant
// whose turn it is, and the round it falls in. Rounds are sized with
// RoundCapacity, so the cursor numbers picks exactly as ExecuteSnakeDraft
// does. ok is false past the last pick the pools allow.
func DueParticipant(participants []models.Participant, pools TierPools, currentPick int) (models.Participant, int, bool) {
	if currentPick < 1 {
		return models.Participant{}, 0, false
	}
	remaining := currentPick
	for round := 1; round <= models.TierCount; round++ {
		capacity := RoundCapacity(len(participants), pools, round)
		if remaining <= capacity {
			return RoundOrder(participants, round)[remaining-1], round, true
		}
		remaining -= capacity
	}
	return models.Participant{}, 0, false
}

func validatePools(eventID string, pools TierPools) error {
	seen := make(map[string]models.Tier, pools.Size())
	for idx, pool := range pools {
		tier := models.Tier(idx + 1)
		for _, a := range pool {
			switch {
			case a.EventID != eventID:
				return &InvalidPoolError{EventID: eventID, Tier: tier, AssetID: a.ID, Reason: "belongs to event " + a.EventID}
			case a.Tier != tier:
				return &InvalidPoolError{EventID: eventID, Tier: tier, AssetID: a.ID, Reason: "is classified " + a.Tier.String()}
			}
			if prev, dup := seen[a.ID]; dup {
				return &InvalidPoolError{EventID: eventID, Tier: tier, AssetID: a.ID, Reason: "already listed in " + prev.String()}
			}
			seen[a.ID] = tier
		}
	}
	return nil
}
