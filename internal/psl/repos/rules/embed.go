package rules

import (
	"bytes"
	_ "embed"

	logpkg "github.com/haukened/hostparts/internal/psl/common/log"
	"github.com/haukened/hostparts/internal/psl/domain"
)

// bundledList is a snapshot of the public suffix list shipped with the
// binary, used when no list path is configured.
//
//go:embed data/public_suffix_list.dat
var bundledList []byte

// Default loads the bundled suffix list snapshot.
func Default(includePrivate bool, logger logpkg.Logger) (domain.RuleStore, error) {
	return Load(bytes.NewReader(bundledList), includePrivate, logger)
}
