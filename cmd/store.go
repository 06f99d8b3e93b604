package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/store"
)

// openStore opens and migrates the snapshot database. Configured settings
// seed fresh workspaces; an existing workspace keeps its own.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path, model.Settings{
		Currency:   cfg.Settings.Currency,
		DateFormat: cfg.Settings.DateFormat,
	})
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// withWorkspace loads the workspace, applies fn, and persists the result.
// If fn fails nothing is written, so the last persisted snapshot survives.
func withWorkspace(ctx context.Context, fn func(ws *model.Workspace) error) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	ws, err := st.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(ws); err != nil {
		return err
	}

	return st.Save(ctx, ws)
}

// readWorkspace loads the workspace for read-only commands.
func readWorkspace(ctx context.Context, fn func(ws *model.Workspace) error) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	ws, err := st.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ws)
}
