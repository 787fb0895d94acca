// Package translate formats user-visible messages for the host locale.
//
// Message keys are en-US fmt formats. Hosts without a detectable locale
// fall back to en-US.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const FALLBACK_LOCALE = "en-US"

var printer = newPrinter()

// newPrinter selects a printer for the preferred host locales.
func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("translate: %v", err)
	}

	locales = append(locales, FALLBACK_LOCALE)

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US Sprintf() format in the host locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
