package logging

import "strings"

const redacted = "[REDACTED]"

var sensitiveKeys = []string{"password", "passphrase", "secret", "token", "authorization"}

// redact masks values whose key names a credential. Both adapters run their
// args through it, so a careless call site cannot leak a token into the log.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || !isSensitive(key) {
			continue
		}
		if out == nil {
			out = make([]any, len(args))
			copy(out, args)
		}
		out[i+1] = redacted
	}
	if out == nil {
		return args
	}
	return out
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
