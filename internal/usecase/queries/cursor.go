package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	CursorVersionV1  = "v1"
)

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (*Keyset, error) {
	if cursor == "" {
		return nil, fmt.Errorf("cursor cannot be empty")
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return nil, fmt.Errorf("unsupported cursor version")
	}

	parts := strings.SplitN(payload, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format: expected '<micros>-<uuid>'")
	}

	timestamp, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid UUID: %w", err)
	}

	return &Keyset{CreatedAt: time.UnixMicro(timestamp), ID: id}, nil
}

// ClampLimit keeps page sizes inside [1, maxLimit]. An over-limit request is
// honored up to the cap and answered with a warning, never rejected.
func ClampLimit(limit, maxLimit int) (int, []string) {
	if limit <= 0 {
		return DefaultListLimit, nil
	}
	if limit > maxLimit {
		warning := fmt.Sprintf("limit %d exceeds maximum %d; clamped", limit, maxLimit)
		return maxLimit, []string{warning}
	}
	return limit, nil
}
