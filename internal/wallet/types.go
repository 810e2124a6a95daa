package wallet

import "time"

// RewardType identifies which task produced a pending reward.
type RewardType string

const (
	RewardCheckIn    RewardType = "check-in"
	RewardVideoWatch RewardType = "video-watch"
	RewardCodeScan   RewardType = "code-scan"
)

// AllRewardTypes returns all reward types in display order.
func AllRewardTypes() []RewardType {
	return []RewardType{RewardCheckIn, RewardVideoWatch, RewardCodeScan}
}

// ParseRewardType validates s as a reward type.
func ParseRewardType(s string) (RewardType, bool) {
	for _, t := range AllRewardTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// DisplayName returns a human-readable label for the reward type.
func (t RewardType) DisplayName() string {
	switch t {
	case RewardCheckIn:
		return "You've Arrived"
	case RewardVideoWatch:
		return "You Tuned In"
	case RewardCodeScan:
		return "Code Cracked"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the reward type.
func (t RewardType) Icon() string {
	switch t {
	case RewardCheckIn:
		return "🎯"
	case RewardVideoWatch:
		return "📺"
	case RewardCodeScan:
		return "🔓"
	default:
		return "✦"
	}
}

// Shard is a collectible element.
type Shard string

const (
	ShardEarth Shard = "Earth"
	ShardWater Shard = "Water"
	ShardFire  Shard = "Fire"
)

// AllShards returns every shard element in display order.
func AllShards() []Shard {
	return []Shard{ShardEarth, ShardWater, ShardFire}
}

// Icon returns the display icon for the shard.
func (s Shard) Icon() string {
	switch s {
	case ShardEarth:
		return "🌍"
	case ShardWater:
		return "💧"
	case ShardFire:
		return "🔥"
	default:
		return "◆"
	}
}

// PendingReward is an earned reward waiting to be collected.
type PendingReward struct {
	ID          string     `json:"id"`
	Type        RewardType `json:"type"`
	EarnedAt    time.Time  `json:"earnedAt"`
	Description string     `json:"description,omitempty"`
}

// Summary aggregates the wallet for display.
type Summary struct {
	Pending      map[RewardType]int `json:"pending"`
	TotalPending int                `json:"totalPending"`
	Shards       map[Shard]int      `json:"shards"`
	TotalShards  int                `json:"totalShards"`
}
