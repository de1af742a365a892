package output

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/taskweave/go-taskweave/internal/config"
)

// Values flattens the canonical configuration into dot-keyed strings, the
// shape every writer in this package consumes. Scalars render with their
// natural formatting; maps and slices render as compact JSON.
func Values(u *config.UnifiedConfig) map[string]string {
	flat := config.Flatten(u.Entries())

	out := make(map[string]string, len(flat))
	for key, val := range flat {
		out[key] = formatValue(val)
	}
	return out
}

func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
