package app

import (
	"os"

	"github.com/dshills/datefield/internal/engine/special"
	"github.com/dshills/datefield/internal/notify"
	"github.com/dshills/datefield/internal/watcher"
)

// ReloadMacros rereads the macro file and swaps it in. The old table stays in
// place when the file cannot be opened.
func (app *Application) ReloadMacros() error {
	path := app.config.Macros.File
	if path == "" {
		return ErrNoMacroFile
	}

	m, err := special.LoadFile(path, app.logger)
	if err != nil {
		app.logger.Warn("reload macros: %v", err)
		return err
	}

	old := app.macros.Swap(m)
	app.logger.Info("reloaded %s: %d macros (was %d)", path, len(m), len(old))
	app.notifier.Notify(notify.Change{
		Kind:    notify.KindReload,
		Source:  path,
		OldText: describe(old),
		NewText: describe(m),
	})
	return nil
}

// onMacroFileEvent reloads on any coalesced event that wrote or recreated
// the file. Editors that save by rename report Rename|Create together.
func (app *Application) onMacroFileEvent(ev watcher.Event) {
	if !ev.Op.Has(watcher.OpCreate | watcher.OpWrite) {
		app.logger.Info("macro file %s: %s, keeping current macros", ev.Path, ev.Op)
		return
	}
	if _, err := os.Stat(ev.Path); err != nil {
		app.logger.Info("macro file %s gone after %s, keeping current macros", ev.Path, ev.Op)
		return
	}
	_ = app.ReloadMacros()
}

// describe lists the triggers of m.
func describe(m special.Map) string {
	return string(m.Triggers())
}
