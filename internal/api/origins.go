package api

import "strings"

// OriginRegistry is the allow-list of browser origins. It is built once at
// startup and only read afterwards, so it is safe to share across requests.
type OriginRegistry struct {
	origins []string
	set     map[string]struct{}
}

// ParseOrigins splits a comma-separated list, trimming whitespace and dropping
// empty entries. Matching is exact: scheme, host and port, case-sensitive.
func ParseOrigins(raw string) OriginRegistry {
	reg := OriginRegistry{set: map[string]struct{}{}}
	for _, part := range strings.Split(raw, ",") {
		o := strings.TrimSpace(part)
		if o == "" {
			continue
		}
		reg.origins = append(reg.origins, o)
		reg.set[o] = struct{}{}
	}
	return reg
}

func (r OriginRegistry) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	_, ok := r.set[origin]
	return ok
}

// Origins returns a copy of the configured entries in their original order.
func (r OriginRegistry) Origins() []string {
	out := make([]string, len(r.origins))
	copy(out, r.origins)
	return out
}

func (r OriginRegistry) String() string {
	if len(r.origins) == 0 {
		return "(none)"
	}
	return strings.Join(r.origins, ", ")
}
