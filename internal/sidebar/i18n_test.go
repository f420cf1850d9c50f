package sidebar

import (
	"strings"
	"testing"
)

func TestTranslate(t *testing.T) {
	if got := EmptyStateTitle("es-MX"); got != "¡Yupi! Todo al día." {
		t.Errorf("EmptyStateTitle(es-MX) = %q", got)
	}
	if got := EmptyStateTitle("de"); got != "Woohoo! All caught up." {
		t.Errorf("EmptyStateTitle(de) = %q, want the English fallback", got)
	}
	if got := Translate("en", msgActorPrefix, "Jane", "hi"); got != "Jane: hi" {
		t.Errorf("Translate(actorPrefix) = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		code   string
		want   string
	}{
		{name: "dollars", amount: 1234, code: "USD", want: "12.34"},
		{name: "yen has no minor unit", amount: 500, code: "JPY", want: "500"},
		{name: "unknown code is printed as given", amount: 150, code: "???", want: "1.50 ???"},
		{name: "missing code prints the number", amount: 150, code: "", want: "1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount("en", tt.amount, tt.code)
			if !strings.Contains(got, tt.want) {
				t.Errorf("FormatAmount(%d, %s) = %q, want it to contain %q", tt.amount, tt.code, got, tt.want)
			}
			if tt.code != "USD" && strings.Contains(got, "$") {
				t.Errorf("FormatAmount(%d, %s) = %q, should not use the dollar sign", tt.amount, tt.code, got)
			}
		})
	}
}
