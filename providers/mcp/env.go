package mcp

import (
	"sort"
	"strings"
)

// ChildEnv builds a subprocess environment from the parent's: every
// variable named in strip is removed, then own is added. The result is
// sorted for stable output.
func ChildEnv(parent []string, strip []string, own map[string]string) []string {
	drop := make(map[string]bool, len(strip)+len(own))
	for _, name := range strip {
		drop[name] = true
	}
	for name := range own {
		drop[name] = true
	}

	env := make([]string, 0, len(parent)+len(own))
	for _, kv := range parent {
		name, _, _ := strings.Cut(kv, "=")
		if name == "" || drop[name] {
			continue
		}
		env = append(env, kv)
	}
	for name, value := range own {
		env = append(env, name+"="+value)
	}

	sort.Strings(env)
	return env
}

// Lookup returns the value of name in env.
func Lookup(env []string, name string) (string, bool) {
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			return v, true
		}
	}
	return "", false
}
