package notify

import (
	"os"
	"strings"
)

type locale string

const (
	localeEnglish locale = "en"
)

// Messages holds user-facing diagnostic texts.
type Messages struct {
	DecodeFailed  string
	Indeterminate string
	ConfigMissing string
}

// MessagesFromEnv resolves diagnostic texts for the current LANG.
func MessagesFromEnv() Messages {
	return messagesFor(resolveLocale(os.Getenv("LANG")))
}

func resolveLocale(raw string) locale {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(raw, "en") {
		return localeEnglish
	}
	return localeEnglish
}

func messagesFor(tag locale) Messages {
	switch tag {
	case localeEnglish:
		fallthrough
	default:
		return Messages{
			DecodeFailed:  "We weren't able to decode data from NIRI socket",
			Indeterminate: "Some error occurred, see log for more details.",
			ConfigMissing: "NIRI_SOCKET was not found.",
		}
	}
}
