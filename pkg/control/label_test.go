package control

import "testing"

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"opacity":         "Opacity",
		"backgroundColor": "Background Color",
		"x":               "X",
		"blur2":           "Blur2",
		"HTMLColor":       "HTML Color",
		"shadow_blur":     "Shadow Blur",
		"enter-delay":     "Enter Delay",
		"borderRadiusTL":  "Border Radius TL",
		"":                "",
	}
	for key, want := range tests {
		if got := Label(key); got != want {
			t.Errorf("Label(%q) = %q, want %q", key, got, want)
		}
	}
}
