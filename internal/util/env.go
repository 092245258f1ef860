package util

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}

	return defaultVal
}

// GetEnvEnum returns the ENV value if it is one of allowedValues, defaultVal otherwise.
func GetEnvEnum(key string, defaultVal string, allowedValues []string) string {
	return ParseEnum(key, GetEnv(key, defaultVal), defaultVal, allowedValues)
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	return ParseBool(GetEnv(key, ""), defaultVal)
}

func GetEnvAsFloat(key string, defaultVal float64) float64 {
	return ParseFloat(GetEnv(key, ""), defaultVal)
}

// GetEnvAsDuration accepts Go duration strings ("15s") as well as plain seconds ("15").
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	return ParseDuration(key, GetEnv(key, ""), defaultVal)
}

func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")
	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	if arr := SplitAndTrim(strVal, sep); len(arr) > 0 {
		return arr
	}

	return defaultVal
}

// ParseEnum returns the allowed value matching val case-insensitively,
// defaultVal otherwise. key is only used for logging.
func ParseEnum(key string, val string, defaultVal string, allowedValues []string) string {
	for _, allowed := range allowedValues {
		if strings.EqualFold(val, allowed) {
			return allowed
		}
	}

	log.Warn().Str("key", key).Str("value", val).Strs("allowed", allowedValues).Msg("Invalid ENV enum value, falling back to default")

	return defaultVal
}

func ParseBool(s string, defaultVal bool) bool {
	if val, err := strconv.ParseBool(s); err == nil {
		return val
	}

	return defaultVal
}

func ParseFloat(s string, defaultVal float64) float64 {
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val
	}

	return defaultVal
}

// ParseDuration accepts Go duration strings ("15s") as well as plain seconds
// ("15"). key is only used for logging.
func ParseDuration(key string, s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}

	if val, err := time.ParseDuration(s); err == nil {
		return val
	}

	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second
	}

	log.Warn().Str("key", key).Str("value", s).Msg("Invalid ENV duration, falling back to default")

	return defaultVal
}
