package cli

import "os"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	BatchFile   string
	DeckName    string
	SkipAudio   bool
	SkipBrowser bool
	NoHistory   bool

	// AnkiConnect flags
	AnkiURL   string
	ModelName string

	// translate-shell flags
	TransCommand string
	SourceLang   string
	TargetLang   string
	TmpDir       string

	// Browser flags
	BrowserCommand string

	// Enrichment flags
	EnrichExamples bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AnkiURL:        "http://localhost:8765",
		ModelName:      "FF basic vocabulary",
		TransCommand:   "trans",
		SourceLang:     "en",
		TargetLang:     "en",
		TmpDir:         os.TempDir(),
		BrowserCommand: "firefox",
	}
}
