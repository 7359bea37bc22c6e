package processor

import (
	"github.com/spf13/viper"

	"codeberg.org/snonux/travelspeak/internal/audio"
	"codeberg.org/snonux/travelspeak/internal/capability"
	"codeberg.org/snonux/travelspeak/internal/cli"
	"codeberg.org/snonux/travelspeak/internal/speech"
	"codeberg.org/snonux/travelspeak/internal/translation"
)

// Settings come from flags bound to viper. A key that viper does not know
// (flag unchanged and absent from the config file) falls back to the flag
// value, which holds the flag default.

func stringSetting(key, flagValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return flagValue
}

func intSetting(key string, flagValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return flagValue
}

func floatSetting(key string, flagValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return flagValue
}

// serviceConfig builds the probe configuration. Speech input and output are
// only probed when wanted, the command line does not open the microphone.
func (p *Processor) serviceConfig(speechInput, speechOutput bool) *capability.Config {
	f := p.flags
	openAIKey := cli.GetOpenAIKey()

	audioConfig := audio.DefaultProviderConfig()
	audioConfig.Provider = stringSetting("speech.output", f.SpeechOutput)
	audioConfig.OpenAIKey = openAIKey
	audioConfig.OpenAIModel = stringSetting("speech.tts_model", f.TTSModel)
	audioConfig.OpenAIVoice = stringSetting("speech.openai_voice", f.OpenAIVoice)
	audioConfig.Volume = floatSetting("speech.volume", f.Volume)
	if !speechOutput {
		audioConfig.Provider = "none"
	}

	translationConfig := translation.DefaultConfig()
	translationConfig.Provider = stringSetting("translation.provider", f.Provider)
	translationConfig.OpenAIKey = openAIKey
	translationConfig.OpenAIModel = stringSetting("translation.openai_model", f.OpenAIModel)
	translationConfig.GeminiKey = cli.GetGeminiKey()
	translationConfig.GeminiModel = stringSetting("translation.gemini_model", f.GeminiModel)
	translationConfig.CacheTTL = intSetting("translation.cache_ttl", f.CacheTTL)

	input := stringSetting("speech.input", f.SpeechInput)
	if !speechInput {
		input = "none"
	}

	return &capability.Config{
		SpeechInput: input,
		OpenAIKey:   openAIKey,
		SampleRate:  speech.DefaultSampleRate,
		Audio:       audioConfig,
		Translation: translationConfig,
	}
}
