package gui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/hanjarecall/internal"
	"codeberg.org/snonux/hanjarecall/internal/cache"
	"codeberg.org/snonux/hanjarecall/internal/card"
	"codeberg.org/snonux/hanjarecall/internal/dataset"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	cacheSelect   *widget.Select
	loadCachedBtn *ttwidget.Button
	openFileBtn   *ttwidget.Button
	sheetBtn      *ttwidget.Button
	display       *CardDisplay
	fileLabel     *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar

	// Control buttons
	startBtn   *ttwidget.Button
	shuffleBtn *ttwidget.Button
	prevBtn    *ttwidget.Button
	nextBtn    *ttwidget.Button
	exportBtn  *ttwidget.Button

	// Phase duration selectors (seconds)
	hanjaTimeSelect   *widget.Select
	meaningTimeSelect *widget.Select

	// State
	session     *Session
	datasetName string
	entries     []cache.Entry
	timer       *time.Timer

	// Collaborators
	store   *cache.Store
	fetcher *dataset.Fetcher
	config  *Config
}

// Config holds GUI application configuration
type Config struct {
	CacheDir       string
	HanjaSeconds   int
	MeaningSeconds int
	SheetGid       string
	DeckName       string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		CacheDir:       cache.DefaultDir(),
		HanjaSeconds:   2,
		MeaningSeconds: 2,
		SheetGid:       "0",
		DeckName:       "Hanja Vocabulary",
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in missing fields with defaults
		defaults := DefaultConfig()
		if config.CacheDir == "" {
			config.CacheDir = defaults.CacheDir
		}
		if config.HanjaSeconds < 1 || config.HanjaSeconds > 10 {
			config.HanjaSeconds = defaults.HanjaSeconds
		}
		if config.MeaningSeconds < 1 || config.MeaningSeconds > 10 {
			config.MeaningSeconds = defaults.MeaningSeconds
		}
		if config.SheetGid == "" {
			config.SheetGid = defaults.SheetGid
		}
		if config.DeckName == "" {
			config.DeckName = defaults.DeckName
		}
	}

	myApp := app.NewWithID("org.codeberg.snonux.hanjarecall")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:     myApp,
		config:  config,
		store:   cache.NewStore(config.CacheDir),
		fetcher: dataset.NewFetcher(),
	}

	a.setupUI()
	a.refreshCacheDropdown()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("HanjaRecall v%s - Hanja Flashcard Trainer", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 700))

	// Cached dataset selection row
	a.cacheSelect = widget.NewSelect([]string{}, nil)
	a.cacheSelect.PlaceHolder = "-- Select a cached dataset --"

	a.loadCachedBtn = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.onLoadCached)
	a.openFileBtn = ttwidget.NewButtonWithIcon("Open File", theme.DocumentIcon(), a.onOpenFile)
	a.sheetBtn = ttwidget.NewButtonWithIcon("Google Sheet", theme.DownloadIcon(), a.onLoadSheet)

	loadSection := container.NewBorder(
		nil, nil,
		widget.NewLabel("Saved:"),
		container.NewHBox(a.loadCachedBtn, widget.NewSeparator(), a.openFileBtn, a.sheetBtn),
		a.cacheSelect,
	)

	// Phase duration selectors
	seconds := make([]string, 10)
	for i := range seconds {
		seconds[i] = fmt.Sprintf("%d", i+1)
	}
	a.hanjaTimeSelect = widget.NewSelect(seconds, func(string) {})
	a.hanjaTimeSelect.SetSelected(fmt.Sprintf("%d", a.config.HanjaSeconds))
	a.meaningTimeSelect = widget.NewSelect(seconds, func(string) {})
	a.meaningTimeSelect.SetSelected(fmt.Sprintf("%d", a.config.MeaningSeconds))

	timeSection := container.NewHBox(
		widget.NewLabel("Hanja (s):"),
		a.hanjaTimeSelect,
		widget.NewLabel("Reading/meaning (s):"),
		a.meaningTimeSelect,
	)

	// Control buttons
	a.startBtn = ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), a.onStartStop)
	a.shuffleBtn = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onShuffle)
	a.prevBtn = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.onPrev)
	a.nextBtn = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.onNext)
	a.exportBtn = ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExport)

	a.setControlsEnabled(false)

	controlSection := container.NewHBox(
		a.prevBtn,
		a.startBtn,
		a.nextBtn,
		widget.NewSeparator(),
		a.shuffleBtn,
		a.exportBtn,
		widget.NewSeparator(),
		timeSection,
	)

	// Status row and progress bar
	a.fileLabel = widget.NewLabel("No dataset loaded")
	a.progressLabel = widget.NewLabel("0 / 0")
	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	a.progressBar = widget.NewProgressBar()
	a.progressBar.TextFormatter = func() string { return "" }

	statusSection := container.NewVBox(
		container.NewHBox(a.fileLabel, widget.NewSeparator(), a.progressLabel),
		a.progressBar,
		a.statusLabel,
	)

	// Main card display
	a.display = NewCardDisplay()

	content := container.NewBorder(
		container.NewVBox(
			loadSection,
			widget.NewSeparator(),
			controlSection,
		),
		statusSection,
		nil, nil,
		a.display,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.stopTimer()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) setupTooltips() {
	a.loadCachedBtn.SetToolTip("Load selected cached dataset")
	a.openFileBtn.SetToolTip("Open a local spreadsheet (.xlsx or .csv)")
	a.sheetBtn.SetToolTip("Load a published Google Sheet")
	a.startBtn.SetToolTip("Start/stop the study cycle (Space)")
	a.shuffleBtn.SetToolTip("Shuffle card order (R)")
	a.prevBtn.SetToolTip("Previous card (Left)")
	a.nextBtn.SetToolTip("Next card (Right)")
	a.exportBtn.SetToolTip("Export current dataset to Anki")
}

// setupKeyboardShortcuts wires the study hotkeys. They do nothing while
// no dataset is loaded.
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if a.session == nil {
			return
		}
		switch ev.Name {
		case fyne.KeySpace:
			a.onStartStop()
		case fyne.KeyLeft:
			a.onPrev()
		case fyne.KeyRight:
			a.onNext()
		case fyne.KeyR:
			a.onShuffle()
		}
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// refreshCacheDropdown reloads the cached dataset list into the dropdown
func (a *Application) refreshCacheDropdown() {
	idx := a.store.LoadIndex()
	a.entries = idx.Files

	options := make([]string, len(a.entries))
	for i, e := range a.entries {
		marker := "💻"
		if e.SourceType == cache.SourceGoogle {
			marker = "☁️"
		}
		options[i] = fmt.Sprintf("%s %s (%d cards)", marker, e.Name, e.Count)
	}
	a.cacheSelect.Options = options
	a.cacheSelect.ClearSelected()
	a.cacheSelect.Refresh()
}

// onLoadCached loads the dataset selected in the dropdown
func (a *Application) onLoadCached() {
	i := a.cacheSelect.SelectedIndex()
	if i < 0 || i >= len(a.entries) {
		dialog.ShowInformation("No selection", "Select a cached dataset first.", a.window)
		return
	}

	entry := a.entries[i]
	cards, err := a.store.Load(entry.CacheFile)
	if err != nil {
		if errors.Is(err, cache.ErrNotCached) {
			dialog.ShowError(fmt.Errorf("cache file for '%s' not found, please reload the source", entry.Name), a.window)
		} else {
			dialog.ShowError(err, a.window)
		}
		return
	}

	a.setDataset(entry.Name, cards)
}

// onOpenFile loads a local spreadsheet file and caches it
func (a *Application) onOpenFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		path := reader.URI().Path()
		reader.Close()

		cards, err := dataset.LoadFile(path)
		if err != nil {
			a.showLoadError(err)
			return
		}

		name := dataset.DatasetName(path)
		if _, err := a.store.Add(name, cache.SourceLocal, path, cards); err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.setDataset(name, cards)
		a.refreshCacheDropdown()
		dialog.ShowInformation("Loaded", fmt.Sprintf("Loaded %d Hanja from %s.", len(cards), name), a.window)
	}, a.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".xlsm", ".csv"}))
	fileDialog.Show()
}

// onLoadSheet asks for a Google Sheets URL and loads its CSV export
func (a *Application) onLoadSheet() {
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://docs.google.com/spreadsheets/d/...")
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. Level 1 Hanja")

	items := []*widget.FormItem{
		widget.NewFormItem("Sheet URL", urlEntry),
		widget.NewFormItem("Save name", nameEntry),
	}

	dialog.ShowForm("Load Google Sheet",
		"Load", "Cancel", items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			url := urlEntry.Text
			if url == "" {
				dialog.ShowInformation("Missing URL", "Enter a Google Sheets URL. The sheet must be shared with anyone who has the link.", a.window)
				return
			}
			name := nameEntry.Text
			if name == "" {
				name = "GoogleSheet_" + time.Now().Format("20060102")
			}
			a.loadSheet(url, name)
		}, a.window)
}

func (a *Application) loadSheet(url, name string) {
	a.updateStatus("Downloading sheet...")

	cards, err := a.fetcher.FetchSheet(context.Background(), url, a.config.SheetGid)
	if err != nil {
		a.updateStatus("Ready")
		if errors.Is(err, dataset.ErrNotSheetURL) {
			dialog.ShowError(fmt.Errorf("not a valid Google Sheets URL: %s", url), a.window)
			return
		}
		a.showLoadError(err)
		return
	}

	if _, err := a.store.Add(name, cache.SourceGoogle, url, cards); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.setDataset(name, cards)
	a.refreshCacheDropdown()
	dialog.ShowInformation("Loaded", fmt.Sprintf("Loaded %d Hanja from the sheet.", len(cards)), a.window)
}

// showLoadError distinguishes an empty result set from a hard failure
func (a *Application) showLoadError(err error) {
	if errors.Is(err, dataset.ErrNoData) {
		dialog.ShowInformation("No data", "No card data found in the source.", a.window)
		return
	}
	dialog.ShowError(fmt.Errorf("could not load source: %w", err), a.window)
}

// setDataset installs a freshly loaded dataset as a new study session
func (a *Application) setDataset(name string, cards []card.Card) {
	a.stopTimer()

	a.datasetName = name
	a.session = NewSession(cards, a.hanjaDuration(), a.meaningDuration())
	a.session.Shuffle()

	a.fileLabel.SetText(fmt.Sprintf("Dataset: %s (%d cards)", name, a.session.Len()))
	a.setControlsEnabled(true)
	a.startBtn.Icon = theme.MediaPlayIcon()
	a.startBtn.Refresh()

	a.renderCurrent()
	a.updateStatus(fmt.Sprintf("Loaded %d Hanja", a.session.Len()))
}

// onStartStop toggles the timed study cycle
func (a *Application) onStartStop() {
	if a.session == nil || a.session.Empty() {
		return
	}

	if a.session.Running() {
		a.session.Stop()
		a.stopTimer()
		a.startBtn.Icon = theme.MediaPlayIcon()
		a.startBtn.Refresh()
		a.updateStatus("Stopped")
		return
	}

	a.session.HanjaTime = a.hanjaDuration()
	a.session.MeaningTime = a.meaningDuration()
	a.session.Start()
	a.startBtn.Icon = theme.MediaStopIcon()
	a.startBtn.Refresh()
	a.renderCurrent()
	a.scheduleTick(a.session.HanjaTime)
	a.updateStatus("Running")
}

// onTick advances the two-phase display cycle
func (a *Application) onTick() {
	if a.session == nil || !a.session.Running() {
		return
	}
	next := a.session.Toggle()
	a.renderCurrent()
	a.scheduleTick(next)
}

func (a *Application) scheduleTick(d time.Duration) {
	a.stopTimer()
	a.timer = time.AfterFunc(d, func() {
		fyne.Do(a.onTick)
	})
}

func (a *Application) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// onPrev shows the previous card
func (a *Application) onPrev() {
	if a.session == nil || a.session.Empty() {
		return
	}
	a.session.Prev()
	a.renderCurrent()
	if a.session.Running() {
		a.scheduleTick(a.session.HanjaTime)
	}
}

// onNext shows the next card
func (a *Application) onNext() {
	if a.session == nil || a.session.Empty() {
		return
	}
	a.session.Next()
	a.renderCurrent()
	if a.session.Running() {
		a.scheduleTick(a.session.HanjaTime)
	}
}

// onShuffle randomizes the card order
func (a *Application) onShuffle() {
	if a.session == nil || a.session.Empty() {
		return
	}
	a.session.Shuffle()
	a.renderCurrent()
	if a.session.Running() {
		a.scheduleTick(a.session.HanjaTime)
	}
	a.updateStatus("Shuffled card order")
}

// renderCurrent draws the current card in its current phase and updates
// the progress indicators
func (a *Application) renderCurrent() {
	if a.session == nil || a.session.Empty() {
		a.display.Clear()
		a.progressLabel.SetText("0 / 0")
		a.progressBar.SetValue(0)
		return
	}

	current := a.session.Current()
	if a.session.Phase() == PhaseMeaning {
		a.display.ShowMeaning(current)
	} else {
		a.display.ShowHanja(current)
	}

	a.progressLabel.SetText(fmt.Sprintf("%d / %d", a.session.Position()+1, a.session.Len()))
	a.progressBar.SetValue(float64(a.session.Position()+1) / float64(a.session.Len()))
}

func (a *Application) setControlsEnabled(enabled bool) {
	buttons := []*ttwidget.Button{a.startBtn, a.shuffleBtn, a.prevBtn, a.nextBtn, a.exportBtn}
	for _, b := range buttons {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (a *Application) hanjaDuration() time.Duration {
	return selectedSeconds(a.hanjaTimeSelect, a.config.HanjaSeconds)
}

func (a *Application) meaningDuration() time.Duration {
	return selectedSeconds(a.meaningTimeSelect, a.config.MeaningSeconds)
}

func selectedSeconds(sel *widget.Select, fallback int) time.Duration {
	var n int
	if _, err := fmt.Sscanf(sel.Selected, "%d", &n); err != nil || n < 1 || n > 10 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

func (a *Application) updateStatus(msg string) {
	a.statusLabel.SetText(msg)
}
