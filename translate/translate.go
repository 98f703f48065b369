// Package translate formats user-visible messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("tersim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	SetLanguage(message.MatchLanguage(locales...))
}

// Language returns the language messages are formatted for.
func Language() language.Tag {
	return tag
}

// SetLanguage changes the language of subsequent messages. Messages
// already formatted, such as sentinel errors, are unchanged.
func SetLanguage(lang language.Tag) {
	tag = lang
	printer = message.NewPrinter(lang)
}

// From formats an en-US Sprintf() style key in the active language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
