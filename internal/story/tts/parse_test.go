package tts

import (
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseESpeakVoices(t *testing.T) {
	output := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  de             --/M       German             gmw/de
 5  en-us          --/M       English_(America)  gmw/en-US            (en 3)
 5  es             --/M       Spanish_(Spain)    roa/es
`
	voices := parseESpeakVoices(output)
	require.Len(t, voices, 3)

	assert.Equal(t, Voice{Name: "English (America)", ID: "en-us", Locale: "en-us", Default: true}, voices[1])
	assert.Equal(t, "es", voices[2].Locale)
	assert.False(t, voices[2].Default)
}

func TestESpeakArgs(t *testing.T) {
	args := espeakArgs(Utterance{
		Text:   "-hola",
		Voice:  Voice{ID: "es"},
		Pitch:  DefaultPitch,
		Rate:   DefaultRate,
		Volume: DefaultVolume,
	})
	assert.Equal(t, []string{"-v", "es", "-s", "157", "-p", "50", "-a", "100", "--", "-hola"}, args)
}

func TestParseSayVoices(t *testing.T) {
	output := `Alex                en_US    # Most people recognize me by my voice.
Eddy (Spanish (Spain)) es_ES    # ¡Hola! Me llamo Eddy.

Monica              es_MX    # Hola, me llamo Mónica.
`
	voices := parseSayVoices(output)
	require.Len(t, voices, 3)

	assert.Equal(t, Voice{Name: "Alex", ID: "Alex", Locale: "en-US"}, voices[0])
	assert.Equal(t, "Eddy (Spanish (Spain))", voices[1].Name)
	assert.Equal(t, "es-ES", voices[1].Locale)
	assert.Equal(t, "es-MX", voices[2].Locale)
}

func TestSayArgs(t *testing.T) {
	args := sayArgs(Utterance{Text: "Hola", Voice: Voice{Name: "Monica"}, Rate: 1})
	assert.Equal(t, []string{"-v", "Monica", "-r", "175", "--", "Hola"}, args)
}

func TestParseSAPIVoices(t *testing.T) {
	output := "Microsoft David Desktop|en-US|True\r\nMicrosoft Helena Desktop|es-ES|False\r\n\r\nbroken line\r\n"

	voices := parseSAPIVoices(output)
	require.Len(t, voices, 2)
	assert.Equal(t, Voice{Name: "Microsoft David Desktop", ID: "Microsoft David Desktop", Locale: "en-US", Default: true}, voices[0])
	assert.False(t, voices[1].Default)
}

func TestSAPIEnv(t *testing.T) {
	env := sapiEnv(Utterance{Text: "'; Remove-Item *", Voice: Voice{Name: "Helena"}, Rate: 0.9, Volume: 1})
	assert.Contains(t, env, "PARALLELSTORY_TEXT='; Remove-Item *")
	assert.Contains(t, env, "PARALLELSTORY_VOICE=Helena")
	assert.Contains(t, env, "PARALLELSTORY_RATE=-1")
	assert.Contains(t, env, "PARALLELSTORY_VOLUME=100")
}

func TestGoogleVoices(t *testing.T) {
	voices := googleVoices([]*texttospeechpb.Voice{
		{Name: "es-ES-Wavenet-B", LanguageCodes: []string{"es-ES"}},
		{Name: "en-US-Wavenet-A", LanguageCodes: []string{"en-US"}},
		{Name: "en-US-Wavenet-B", LanguageCodes: []string{"en-US"}},
		{Name: "cmn-CN-Wavenet-A", LanguageCodes: []string{"cmn-CN", "zh-CN"}},
	})

	require.Len(t, voices, 5)
	assert.True(t, voices[1].Default)
	assert.False(t, voices[2].Default)
	assert.Equal(t, "zh-CN", voices[4].Locale)
}

func TestSynthesizeRequest(t *testing.T) {
	req := synthesizeRequest("Hola", Utterance{
		Voice:  Voice{Name: "es-ES-Wavenet-B", Locale: "es-ES"},
		Pitch:  1,
		Rate:   0.9,
		Volume: 1,
	})
	assert.Equal(t, "es-ES", req.GetVoice().GetLanguageCode())
	assert.Equal(t, 0.9, req.GetAudioConfig().GetSpeakingRate())
	assert.Equal(t, 0.0, req.GetAudioConfig().GetVolumeGainDb())

	chirp := synthesizeRequest("Hola", Utterance{Voice: Voice{Name: "es-ES-Chirp3-HD-Charon"}, Rate: 0.9})
	assert.Equal(t, 0.0, chirp.GetAudioConfig().GetSpeakingRate())
}

func TestSplitIntoChunks(t *testing.T) {
	assert.Nil(t, splitIntoChunks("", 10))
	assert.Equal(t, []string{"abc", "de"}, splitIntoChunks("abcde", 3))
	assert.Equal(t, []string{"ñá"}, splitIntoChunks("ñá", 3))
}
