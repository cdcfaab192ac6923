//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mouseTouchID is the touch ID reported for the primary mouse button.
const mouseTouchID = -1

var polledKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyTab, KeyTab},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		// Space is reported as a key with press and release.
		if r == ' ' {
			continue
		}
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	for _, pk := range polledKeys {
		if inpututil.IsKeyJustPressed(pk.key) {
			k.emit(KeyEvent{Code: pk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(pk.key) {
			k.emit(KeyEvent{Code: pk.code, Press: false})
		}
	}
}

// poll reports touch starts and ends. Cursor and touch positions are in
// framebuffer pixels because the window layout matches the framebuffer size.
func (t *hostTouch) poll() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		t.emit(TouchEvent{ID: int(id), X: x, Y: y, Press: true})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		t.emit(TouchEvent{ID: int(id), X: x, Y: y, Press: false})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		t.emit(TouchEvent{ID: mouseTouchID, X: x, Y: y, Press: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		t.emit(TouchEvent{ID: mouseTouchID, X: x, Y: y, Press: false})
	}
}
