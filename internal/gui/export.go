package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"codeberg.org/snonux/hanjarecall/internal"
	"codeberg.org/snonux/hanjarecall/internal/anki"
)

// onExport writes the current dataset to an Anki .apkg package
func (a *Application) onExport() {
	if a.session == nil || a.session.Empty() {
		dialog.ShowInformation("Nothing to export", "Load a dataset first.", a.window)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		path := writer.URI().Path()
		writer.Close()

		if !strings.HasSuffix(path, ".apkg") {
			path += ".apkg"
		}

		gen := anki.NewAPKGGenerator(a.config.DeckName)
		gen.AddCards(a.session.Cards())

		if err := gen.GenerateAPKG(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to create Anki package: %w", err), a.window)
			return
		}

		a.updateStatus(fmt.Sprintf("Exported %d cards to %s", a.session.Len(), path))
		dialog.ShowInformation("Export complete",
			fmt.Sprintf("Created Anki deck '%s' with %d cards.\n\nImport the .apkg file into Anki to study.",
				a.config.DeckName, a.session.Len()),
			a.window)
	}, a.window)

	saveDialog.SetFileName(internal.SanitizeName(a.datasetName) + ".apkg")
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".apkg"}))
	saveDialog.Show()
}
