package types

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// Entity id prefixes. Every persisted document gets a prefixed ULID so that
// an id is self-describing in logs and API payloads.
const (
	UUIDPrefixUser         = "user"
	UUIDPrefixReport       = "report"
	UUIDPrefixRevenue      = "rev"
	UUIDPrefixActivity     = "act"
	UUIDPrefixTraffic      = "traffic"
	UUIDPrefixNotification = "notif"
	UUIDPrefixRequest      = "req"
)

// GenerateUUID returns a lowercase ULID
func GenerateUUID() string {
	return strings.ToLower(ulid.Make().String())
}

// GenerateUUIDWithPrefix returns a lowercase ULID with the given prefix,
// e.g. "report_01hv9crnb3..."
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
