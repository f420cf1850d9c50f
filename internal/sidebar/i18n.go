package sidebar

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgArchived      = "sidebar.archived"
	msgDeleted       = "sidebar.deletedMessage"
	msgEmptyTitle    = "sidebar.emptyTitle"
	msgEmptySubtitle = "sidebar.emptySubtitle"
	msgActorPrefix   = "sidebar.actorPrefix"
	msgRequested     = "sidebar.requested"
	msgUnavailable   = "sidebar.unavailable"
	msgTooltip       = "sidebar.attentionTooltip"
)

var supportedLocales = []language.Tag{language.English, language.Spanish}

var localeMatcher = language.NewMatcher(supportedLocales)

func init() {
	en := language.English
	es := language.Spanish

	message.SetString(en, msgArchived, "This chat is no longer active.")
	message.SetString(es, msgArchived, "Este chat ya no está activo.")
	message.SetString(en, msgDeleted, "[Deleted message]")
	message.SetString(es, msgDeleted, "[Mensaje eliminado]")
	message.SetString(en, msgEmptyTitle, "Woohoo! All caught up.")
	message.SetString(es, msgEmptyTitle, "¡Yupi! Todo al día.")
	message.SetString(en, msgEmptySubtitle, "Use / to find something to chat about, or press n to create something.")
	message.SetString(es, msgEmptySubtitle, "Usa / para buscar algo de qué hablar, o pulsa n para crear algo.")
	message.SetString(en, msgActorPrefix, "%s: %s")
	message.SetString(es, msgActorPrefix, "%s: %s")
	message.SetString(en, msgRequested, "%s requested %s")
	message.SetString(es, msgRequested, "%s solicitó %s")
	message.SetString(en, msgUnavailable, "Conversation unavailable")
	message.SetString(es, msgUnavailable, "Conversación no disponible")
	message.SetString(en, msgTooltip, "Get started here!")
	message.SetString(es, msgTooltip, "¡Empieza aquí!")
}

// ResolveLocale maps a locale identifier such as "es-MX" to the closest
// supported language. Unparseable identifiers resolve to English.
func ResolveLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, index, _ := localeMatcher.Match(tag)
	return supportedLocales[index]
}

// Translate renders a catalog message in the given locale.
func Translate(locale string, key string, args ...any) string {
	return message.NewPrinter(ResolveLocale(locale)).Sprintf(key, args...)
}

// FormatAmount renders an amount in minor units with its currency symbol.
// Codes that are not ISO 4217 are printed as given after the number, with
// two minor digits.
func FormatAmount(locale string, amount int64, code string) string {
	p := message.NewPrinter(ResolveLocale(locale))
	unit, err := currency.ParseISO(code)
	if err != nil {
		value := float64(amount) / 100
		if code == "" {
			return p.Sprintf("%.2f", value)
		}
		return p.Sprintf("%.2f %s", value, code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	value := float64(amount) / math.Pow10(scale)
	return p.Sprint(currency.Symbol(unit.Amount(value)))
}

// EmptyStateTitle and EmptyStateSubtitle describe the zero-row list.
func EmptyStateTitle(locale string) string {
	return Translate(locale, msgEmptyTitle)
}

func EmptyStateSubtitle(locale string) string {
	return Translate(locale, msgEmptySubtitle)
}

// UnavailableTitle is shown for rows whose conversation is missing.
func UnavailableTitle(locale string) string {
	return Translate(locale, msgUnavailable)
}

// AttentionTooltipText labels the row that won the attention indicator.
func AttentionTooltipText(locale string) string {
	return Translate(locale, msgTooltip)
}
