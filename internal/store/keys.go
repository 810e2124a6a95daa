package store

// Key space. Values are plain strings; list values are JSON arrays.
const (
	KeyLastCheckIn    = "lastCheckIn"
	KeyLastVideoWatch = "lastVideoWatch"
	KeyLastCodeScan   = "lastCodeScan"

	KeyCompletedLocation = "completed_location"
	KeyCompletedVideo    = "completed_video"
	KeyCompletedCode     = "completed_code"

	KeyRewards = "rewards"
	KeyShards  = "shards"

	KeyAvatarName = "avatar_name"
	KeyAvatarIcon = "avatar_icon"
)

// FlagSet is the value written to a completion flag key.
const FlagSet = "1"

// CooldownKeys returns the three last-completion timestamp keys.
func CooldownKeys() []string {
	return []string{KeyLastCheckIn, KeyLastVideoWatch, KeyLastCodeScan}
}
