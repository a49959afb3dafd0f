package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyB = 66 // B key (ASCII)
	KeyC = 67 // C key (ASCII)
	KeyD = 68 // D key (ASCII)
	KeyL = 76 // L key (ASCII)
	KeyN = 78 // N key (ASCII)
	KeyR = 82 // R key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyT = 84 // T key (ASCII)
	KeyV = 86 // V key (ASCII)
	KeyX = 88 // X key (ASCII)

	KeyMinus = 45 // - key (ASCII)
	KeyEqual = 61 // = key, shares the + glyph on US layouts (ASCII)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
	Key7 = 55 // 7 key (ASCII)
	Key8 = 56 // 8 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Additional non-printable keys
const (
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)

	KeyF1 = 290 // F1 (GLFW)
	KeyF5 = 294 // F5 (GLFW)
	KeyF9 = 298 // F9 (GLFW)

	KeyKPSubtract = 333 // Keypad - (GLFW)
	KeyKPAdd      = 334 // Keypad + (GLFW)

	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)
