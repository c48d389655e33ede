package automation

// specialKeyMap maps common caller key names (JavaScript style and pyautogui
// style) to robotgo key names.
var specialKeyMap = map[string]string{
	"Enter":      "enter",
	"Return":     "enter",
	"Escape":     "escape",
	"Backspace":  "backspace",
	"Tab":        "tab",
	"Space":      "space",
	"ArrowUp":    "up",
	"ArrowDown":  "down",
	"ArrowLeft":  "left",
	"ArrowRight": "right",
	"Control":    "ctrl",
	"Alt":        "alt",
	"Option":     "alt",
	"Shift":      "shift",
	"Meta":       "cmd",
	"Command":    "cmd",
	"Win":        "cmd",
	"Delete":     "delete",
	"Home":       "home",
	"End":        "end",
	"PageUp":     "pageup",
	"PageDown":   "pagedown",
	"Insert":     "insert",
	"CapsLock":   "capslock",
	"F1":         "f1",
	"F2":         "f2",
	"F3":         "f3",
	"F4":         "f4",
	"F5":         "f5",
	"F6":         "f6",
	"F7":         "f7",
	"F8":         "f8",
	"F9":         "f9",
	"F10":        "f10",
	"F11":        "f11",
	"F12":        "f12",
}

// MapKey maps a caller-supplied key name to a robotgo key name. Names not in
// the table pass through unchanged.
func MapKey(key string) string {
	if mapped, ok := specialKeyMap[key]; ok {
		return mapped
	}
	return key
}
