package cache

import "strings"

const (
	GlobalKeyPrefix = "quizmaster"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuestionSetKey is the cache key for a quiz's ordered question set.
func QuestionSetKey(quizID string) string {
	return GenerateCacheKey("quiz", "questions", quizID)
}

// JoinCodeKey is the cache key mapping a join code to a quiz ID.
func JoinCodeKey(code string) string {
	return GenerateCacheKey("quiz", "joincode", code)
}
