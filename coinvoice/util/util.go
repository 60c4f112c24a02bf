package util

import (
	"os"
	"strconv"
)

// DebugEnabled reports whether COINVOICE_DEBUG is set to a true value.
func DebugEnabled() bool {
	return etb("COINVOICE_DEBUG")
}

// HttpTraceEnabled reports whether COINVOICE_HTTP_TRACE is set to a true value.
func HttpTraceEnabled() bool {
	return etb("COINVOICE_HTTP_TRACE")
}

func etb(envName string) bool {
	v, ok := os.LookupEnv(envName)
	if !ok {
		return false
	}

	bv, err := strconv.ParseBool(v)

	return err == nil && bv
}

// GetEnvOrDefault returns the value of key, or def when key is unset or empty.
func GetEnvOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
