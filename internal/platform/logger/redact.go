package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
)

type action int

const (
	keep action = iota
	redact
	hash
)

// fieldRules maps key fragments to what happens to the logged value. Credentials
// are dropped outright; farmer contact details are replaced by a salted digest
// so repeated searches from one profile can still be correlated.
var fieldRules = []struct {
	fragment string
	act      action
}{
	{"api_key", redact},
	{"apikey", redact},
	{"password", redact},
	{"secret", redact},
	{"token", redact},
	{"authorization", redact},
	{"dsn", redact},
	{"address", hash},
	{"phone", hash},
}

type policy struct {
	enabled bool
	salt    string
}

var (
	policyOnce sync.Once
	active     policy
)

func currentPolicy() policy {
	policyOnce.Do(func() {
		active.enabled = true
		switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			active.enabled = false
		}
		active.salt = strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))
	})
	return active
}

func classify(key string) action {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return keep
	}
	for _, r := range fieldRules {
		if strings.Contains(key, r.fragment) {
			return r.act
		}
	}
	return keep
}

func sanitizeKVs(kv []interface{}) []interface{} {
	p := currentPolicy()
	if len(kv) == 0 || !p.enabled {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		key := stringify(kv[i])
		out = append(out, key, p.apply(key, kv[i+1]))
	}
	if len(kv)%2 == 1 {
		out = append(out, kv[len(kv)-1])
	}
	return out
}

func (p policy) apply(key string, val interface{}) interface{} {
	switch classify(key) {
	case redact:
		return "[REDACTED]"
	case hash:
		return p.digest(val)
	}
	switch v := val.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = p.apply(k, inner)
		}
		return out
	case map[string]string:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = p.apply(k, inner)
		}
		return out
	}
	return val
}

func (p policy) digest(val interface{}) string {
	raw := stringify(val)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(p.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
