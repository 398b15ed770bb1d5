package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// shimmerTickMsg advances the highlight sweep on the selected card
type shimmerTickMsg struct{}

// ShimmerConfig holds configuration for the selected card highlight
type ShimmerConfig struct {
	Enabled      bool
	ReduceMotion bool // static highlight instead of a sweep
	Speed        time.Duration
	WidthRatio   float64 // width of the bright band relative to the text
	Pause        time.Duration
}

func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    true,
		Speed:      100 * time.Millisecond,
		WidthRatio: 0.25,
		Pause:      700 * time.Millisecond,
	}
}

// shimmer sweeps a bright band across a title, one step per tick
type shimmer struct {
	cfg       ShimmerConfig
	center    float64
	pausedFor time.Duration
	trueColor bool
}

func newShimmer(cfg ShimmerConfig) *shimmer {
	if os.Getenv("NO_COLOR") != "" {
		cfg.ReduceMotion = true
	}
	return &shimmer{cfg: cfg, trueColor: os.Getenv("COLORTERM") == "truecolor"}
}

func (s *shimmer) active() bool {
	return s.cfg.Enabled && !s.cfg.ReduceMotion
}

// tick schedules the next sweep step, or nothing when animation is off
func (s *shimmer) tick() tea.Cmd {
	if !s.active() {
		return nil
	}
	return tea.Tick(s.cfg.Speed, func(time.Time) tea.Msg { return shimmerTickMsg{} })
}

// Reset restarts the sweep, used when the selection changes
func (s *shimmer) Reset() {
	s.center = 0
	s.pausedFor = 0
}

// advance moves the band by one tick for text of length n
func (s *shimmer) advance(n int) {
	if n <= 0 || !s.active() {
		return
	}
	if s.pausedFor > 0 {
		s.pausedFor -= s.cfg.Speed
		if s.pausedFor <= 0 {
			s.center = -float64(n) * s.cfg.WidthRatio
		}
		return
	}
	s.center += math.Max(1, float64(n)/12)
	if s.center >= float64(n)*(1+s.cfg.WidthRatio) {
		s.pausedFor = s.cfg.Pause
	}
}

// Render draws text with the band at its current position
func (s *shimmer) Render(text string) string {
	bright := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	if !s.active() || text == "" {
		return bright.Render(text)
	}

	runes := []rune(text)
	sigma := math.Max(1, s.cfg.WidthRatio*float64(len(runes))/2)

	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(s.blend(w)).Render(string(r)))
	}
	return b.String()
}

// blend mixes the base purple-grey with the highlight by weight w
func (s *shimmer) blend(w float64) lipgloss.Color {
	if !s.trueColor {
		if w > 0.5 {
			return lipgloss.Color("147")
		}
		return lipgloss.Color("250")
	}
	// #B1B8C7 towards #EAE6FF
	mix := func(a, b int) int { return int(float64(a)*(1-w) + float64(b)*w) }
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", mix(177, 234), mix(184, 230), mix(199, 255)))
}
