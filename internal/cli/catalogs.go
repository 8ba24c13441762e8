// Package cli implements the command-line commands dispatched from main.
// Each command is a struct with ParseFlags and Run, following a shared
// shape so main can treat them uniformly.
package cli

import (
	"github.com/espressoprogrammer/library/internal/books"
	"github.com/espressoprogrammer/library/internal/config"
	"github.com/espressoprogrammer/library/internal/progress"
	"github.com/espressoprogrammer/library/internal/sessions"
)

// catalogs bundles the fully wired domain services for one storage root.
type catalogs struct {
	books    *books.Catalog
	sessions *sessions.Catalog
	progress *progress.Service
}

// newCatalogs wires stores and catalogs for the given root. An empty root
// falls back to the configured library folder.
func newCatalogs(root string) *catalogs {
	if root == "" {
		root = config.NewConfig().Storage.Root
	}

	booksStore := books.NewStore(root)
	sessionsStore := sessions.NewStore(root)
	sessionsCatalog := sessions.NewCatalog(sessionsStore, booksStore)

	return &catalogs{
		books:    books.NewCatalog(booksStore, sessionsCatalog),
		sessions: sessionsCatalog,
		progress: progress.NewService(booksStore, sessionsCatalog),
	}
}
