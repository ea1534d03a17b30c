package orchestrator

import (
	"os"
	"path/filepath"
	"strings"
)

// BuilderEnv returns the environment a build subprocess runs with: the
// caller's environment, with PREFIX and PATH (prefix/bin prepended)
// overridden, and then any per-codebase overrides from metadata.yaml's
// environment key layered on top.
func BuilderEnv(prefix string, extra map[string]string) []string {
	envMap := map[string]string{}
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			envMap[kv[:i]] = kv[i+1:]
		}
	}

	envMap["PREFIX"] = prefix
	envMap["PATH"] = strings.Join([]string{
		filepath.Join(prefix, "bin"),
		envMap["PATH"],
	}, string(os.PathListSeparator))

	for k, v := range extra {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
