package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// TimeFormat is the precise format used for timestamps inside tokens.
const TimeFormat = time.RFC3339Nano

// EncodeMultiFieldToken creates an opaque token from any number of string
// fields. Repositories use it for keyset pagination over (timestamp, id)
// pairs.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
