package audit

import "strings"

// RedactedPlaceholder replaces every credential value in audit detail
const RedactedPlaceholder = "[REDACTED]"

// sensitive keys, compared after lowercasing and dropping '_' and '-'
var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"passwordhash":    {},
	"newpassword":     {},
	"currentpassword": {},
	"oldpassword":     {},
	"token":           {},
	"accesstoken":     {},
	"refreshtoken":    {},
	"secret":          {},
	"clientsecret":    {},
	"apikey":          {},
	"authorization":   {},
}

// IsSensitiveKey reports whether a field name holds a credential or secret
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	k = strings.NewReplacer("_", "", "-", "").Replace(k)
	_, ok := sensitiveKeys[k]
	return ok
}

// Redact returns a deep copy of v with sensitive values replaced.
// The input is never modified.
func Redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if IsSensitiveKey(k) {
				out[k] = RedactedPlaceholder
				continue
			}
			out[k] = Redact(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Redact(item)
		}
		return out
	default:
		return v
	}
}
