package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	CacheDir     string
	File         string
	SheetURL     string
	Name         string
	Gid          string
	ListCached   bool
	ClearCache   bool
	ArchiveCache bool
	GUIMode      bool

	// Study flags
	HanjaSeconds   int
	MeaningSeconds int

	// Export flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string
	Output       string

	// Enrichment flags
	Enrich         bool
	EnrichProvider string
	OpenAIModel    string
	GeminiModel    string
	ListModels     bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Gid:            "0",
		HanjaSeconds:   2,
		MeaningSeconds: 2,
		DeckName:       "Hanja Vocabulary",
		EnrichProvider: "openai",
		OpenAIModel:    "gpt-4o-mini",
		GeminiModel:    "gemini-2.0-flash",
	}
}
