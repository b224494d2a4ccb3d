package tetris

// SoundEffect identifies a sound the engine asks to be played.
type SoundEffect int

const (
	SoundLanded SoundEffect = iota
	SoundDrop
	SoundMove
	SoundRotate
	SoundLevelUp
	SoundDeletedRow
	SoundGameOver
	soundCount
)

var soundNames = [soundCount]string{"landed", "drop", "move", "rotate", "level_up", "deleted_row", "game_over"}

func (s SoundEffect) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// SoundEffects lists every effect, for preloading.
func SoundEffects() []SoundEffect {
	out := make([]SoundEffect, soundCount)
	for i := range out {
		out[i] = SoundEffect(i)
	}
	return out
}

// Sound plays effects. Implementations must not block.
type Sound interface {
	Play(e SoundEffect)
}

// NopSound discards every effect.
type NopSound struct{}

// Play does nothing.
func (NopSound) Play(SoundEffect) {}

// Overlay is a named prompt shown over the playfield.
type Overlay int

const (
	OverlayPaused Overlay = iota
	OverlayGameOver
	OverlayRetryOrQuit
	OverlayPressSpace
	overlayCount
)

// Text returns the prompt shown for the overlay.
func (o Overlay) Text() string {
	switch o {
	case OverlayPaused:
		return "PAUSED"
	case OverlayGameOver:
		return "GAME OVER"
	case OverlayRetryOrQuit:
		return "SPACE retry  ESC quit"
	case OverlayPressSpace:
		return "PRESS SPACE"
	default:
		return ""
	}
}

// Notifier receives one-way UI updates from the engine.
type Notifier interface {
	SetStats(score, level int)
	SetNextPiece(p Piece)
	ShowOverlay(o Overlay)
	HideOverlay(o Overlay)
}

// HUD is the UI-side state fed by the engine. Front ends read it when drawing.
type HUD struct {
	Score    int
	Level    int
	Next     Piece
	HasNext  bool
	overlays [overlayCount]bool
}

// SetStats records score and level.
func (h *HUD) SetStats(score, level int) {
	h.Score = score
	h.Level = level
}

// SetNextPiece records the preview piece.
func (h *HUD) SetNextPiece(p Piece) {
	h.Next = p
	h.HasNext = true
}

// ShowOverlay makes an overlay visible.
func (h *HUD) ShowOverlay(o Overlay) {
	h.overlays[o] = true
}

// HideOverlay hides an overlay.
func (h *HUD) HideOverlay(o Overlay) {
	h.overlays[o] = false
}

// Visible reports whether an overlay is shown.
func (h *HUD) Visible(o Overlay) bool {
	return h.overlays[o]
}

// VisibleOverlays returns the shown overlays in declaration order.
func (h *HUD) VisibleOverlays() []Overlay {
	var out []Overlay
	for o := Overlay(0); o < overlayCount; o++ {
		if h.overlays[o] {
			out = append(out, o)
		}
	}
	return out
}
