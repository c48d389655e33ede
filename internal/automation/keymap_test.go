package automation

import "testing"

func TestMapKeySpecialNames(t *testing.T) {
	cases := map[string]string{
		"Enter":      "enter",
		"Return":     "enter",
		"ArrowLeft":  "left",
		"Meta":       "cmd",
		"Command":    "cmd",
		"F5":         "f5",
		"Escape":     "escape",
	}
	for in, want := range cases {
		if got := MapKey(in); got != want {
			t.Errorf("MapKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapKeyPassThrough(t *testing.T) {
	for _, key := range []string{"a", "1", "enter", "ctrl", "unknownkey"} {
		if got := MapKey(key); got != key {
			t.Errorf("MapKey(%q) = %q, want pass-through", key, got)
		}
	}
}
