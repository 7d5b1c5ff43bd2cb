// Package rules loads public suffix list text into the core rule store and
// holds the currently active SuffixList for the rest of the application.
package rules

import (
	"bufio"
	"io"
	"os"
	"strings"

	logpkg "github.com/haukened/hostparts/internal/psl/common/log"
	"github.com/haukened/hostparts/internal/psl/domain"
)

const (
	commentMarker   = "//"
	privateSentinel = "===BEGIN PRIVATE DOMAINS==="
)

// Load parses suffix-list text into a RuleStore.
//
// Behavior, line by line:
// - Strips a potential BOM and surrounding whitespace
// - The private-section sentinel is detected before the comment check,
//   because the upstream list publishes it inside a comment line
// - When includePrivate is false, loading stops at the sentinel and the
//   entire private section is discarded
// - Skips blank lines and "//" comments
// - Every remaining line is a rule verbatim; classification recognizes the
//   "!" and "*." markers and nothing else, so malformed lines land in the
//   store as normal rules by contract
func Load(r io.Reader, includePrivate bool, logger logpkg.Logger) (domain.RuleStore, error) {
	scanner := bufio.NewScanner(r)
	builder := domain.NewStoreBuilder()

	public := true
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		line = strings.TrimPrefix(line, "\uFEFF")
		line = strings.TrimSpace(line)

		if strings.Contains(line, privateSentinel) {
			if !includePrivate {
				logger.Debug(map[string]any{"line": lineNum}, "rules_stop_at_private_section")
				break
			}
			public = false
			logger.Debug(map[string]any{"line": lineNum}, "rules_enter_private_section")
			continue
		}
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		builder.Add(line, public)
	}

	if err := scanner.Err(); err != nil {
		logger.Error(map[string]any{"line": lineNum, "error": err.Error()}, "rules_scan_error")
		return domain.RuleStore{}, err
	}

	store := builder.Build()
	logger.Debug(map[string]any{"rules": store.Len(), "include_private": includePrivate}, "rules_loaded")
	return store, nil
}

// LoadFile loads a suffix list from path.
func LoadFile(path string, includePrivate bool, logger logpkg.Logger) (domain.RuleStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RuleStore{}, err
	}
	defer f.Close()
	return Load(f, includePrivate, logger)
}
