package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	LogLevel   string
	LogFile    string
	ListModels bool
	Archive    bool

	// Service flags
	Provider     string
	OpenAIModel  string
	GeminiModel  string
	CacheTTL     int
	SpeechInput  string
	SpeechOutput string
	TTSModel     string
	OpenAIVoice  string
	Volume       float64

	// Storage flags
	HistoryDB    string
	SettingsFile string
	ExportDir    string

	// translate flags
	From      string
	To        string
	BatchFile string
	Copy      bool
	Speak     bool
	Export    bool

	// deck flags
	DeckName string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:     "warn",
		Provider:     "openai",
		OpenAIModel:  "gpt-4o-mini",
		GeminiModel:  "gemini-2.0-flash",
		CacheTTL:     3600,
		SpeechInput:  "whisper",
		SpeechOutput: "openai",
		TTSModel:     "tts-1",
		OpenAIVoice:  "alloy",
		Volume:       0.9,
		DeckName:     "TravelSpeak Phrases",
	}
}
