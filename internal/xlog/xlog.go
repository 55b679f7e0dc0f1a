// Package xlog is the logging façade shared by lfu, lru and bptree.
//
// Packages never import a logging backend directly; they accept an
// optional logr.Logger override and otherwise fall back to Default(),
// a stdr-backed logger. This keeps the library usable by callers who
// want to route its logs into their own sink without forcing a backend
// choice on them.
package xlog

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var fallback = stdr.New(log.New(os.Stderr, "", log.LstdFlags))

// Default returns the package-level logger used when a caller doesn't
// supply one via a WithLogger option.
func Default() logr.Logger {
	return fallback
}

// Debug is the verbosity level used for hot-path events: cache inserts,
// promotions and evictions, tree creation and root splits. Callers that want quieter logs can set
// stdr.SetVerbosity below this level.
const Debug = 1
