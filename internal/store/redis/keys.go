package redis

import "fmt"

const (
	// KeyPrefixLink is the prefix for wrapped link records
	KeyPrefixLink = "linkgate:link:"
	// KeyPrefixRateLimit is the prefix for rate limit window counters
	KeyPrefixRateLimit = "linkgate:rl:"
	// KeyAllLinks is the key for the set of all known short IDs
	KeyAllLinks = "linkgate:links:all"
	// KeyBotLog is the key for the bounded bot audit list
	KeyBotLog = "linkgate:botlog"
)

// LinkKey returns the Redis key for a wrapped link by short ID
func LinkKey(shortID string) string {
	return KeyPrefixLink + shortID
}

// RateLimitKey returns the Redis key for a window counter
func RateLimitKey(window string) string {
	return KeyPrefixRateLimit + window
}

// AllLinksKey returns the key for the set of all short IDs
func AllLinksKey() string {
	return KeyAllLinks
}

// BotLogKey returns the key for the bot audit list
func BotLogKey() string {
	return KeyBotLog
}

// ExtractShortID extracts the short ID from a link key
func ExtractShortID(key string) (string, error) {
	if len(key) <= len(KeyPrefixLink) {
		return "", fmt.Errorf("invalid link key: %s", key)
	}
	return key[len(KeyPrefixLink):], nil
}
