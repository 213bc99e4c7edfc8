package services

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// pageWindow clamps a limit/offset pair. A limit of zero or less selects
// fallback and anything above ceiling is capped.
func pageWindow(limit, offset, fallback, ceiling int) (int, int) {
	if limit <= 0 {
		limit = fallback
	}
	if ceiling > 0 && limit > ceiling {
		limit = ceiling
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// likeEscape is the escape character paired with escapeLike. A backslash is
// avoided because MySQL treats it as an escape inside string literals.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// escapeLike makes value match literally inside a LIKE pattern.
func escapeLike(value string) string {
	return likeReplacer.Replace(value)
}

func encodeJSON(value map[string]any) (datatypes.JSON, error) {
	if len(value) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func decodeJSON(data datatypes.JSON) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
