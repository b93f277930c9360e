package styles

import "testing"

func TestPackageStylesRender(t *testing.T) {
	styles := map[string]interface{ Render(...string) string }{
		"Title":      Title,
		"Subtitle":   Subtitle,
		"Header":     Header,
		"StatusBar":  StatusBar,
		"ErrorMsg":   ErrorMsg,
		"SuccessMsg": SuccessMsg,
		"WarningMsg": WarningMsg,
	}
	for name, s := range styles {
		if out := s.Render("x"); out == "" {
			t.Errorf("%s.Render(%q) returned empty output", name, "x")
		}
	}
}

func TestColorsAreSet(t *testing.T) {
	colors := map[string]string{
		"PrimaryColor":   string(PrimaryColor),
		"SecondaryColor": string(SecondaryColor),
		"WarningColor":   string(WarningColor),
		"ErrorColor":     string(ErrorColor),
		"MutedColor":     string(MutedColor),
		"SurfaceColor":   string(SurfaceColor),
		"TextColor":      string(TextColor),
		"BorderColor":    string(BorderColor),
		"BlueColor":      string(BlueColor),
	}
	for name, value := range colors {
		if value == "" {
			t.Errorf("%s should not be empty", name)
		}
	}
}
