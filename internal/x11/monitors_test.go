package x11

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestAddStrutsOnlyCountsIntersectingDocks(t *testing.T) {
	left := tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := tiling.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// Top panel spanning only the left monitor.
	sp := &ewmh.WmStrutPartial{Top: 32, TopStartX: 0, TopEndX: 1919}

	if in := addStruts(insets{}, left, 3840, 1080, sp); in.top != 32 {
		t.Fatalf("expected left monitor top strut 32, got %+v", in)
	}
	if in := addStruts(insets{}, right, 3840, 1080, sp); !in.zero() {
		t.Fatalf("expected right monitor untouched, got %+v", in)
	}
}

func TestAddStrutsKeepsWidestDock(t *testing.T) {
	mon := tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	in := addStruts(insets{}, mon, 1920, 1080, &ewmh.WmStrutPartial{Bottom: 40, BottomStartX: 0, BottomEndX: 1919})
	in = addStruts(in, mon, 1920, 1080, &ewmh.WmStrutPartial{Bottom: 24, BottomStartX: 0, BottomEndX: 1919})
	in = addStruts(in, mon, 1920, 1080, &ewmh.WmStrutPartial{Left: 48, LeftStartY: 0, LeftEndY: 1079})

	if in.bottom != 40 || in.left != 48 || in.top != 0 || in.right != 0 {
		t.Fatalf("unexpected insets %+v", in)
	}
}

func TestIsNormalType(t *testing.T) {
	tests := []struct {
		types []string
		want  bool
	}{
		{nil, true},
		{[]string{"_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{[]string{"_NET_WM_WINDOW_TYPE_DOCK"}, false},
		{[]string{"_NET_WM_WINDOW_TYPE_DIALOG"}, false},
		{[]string{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE", "_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{[]string{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE"}, false},
	}

	for _, tt := range tests {
		if got := isNormalType(tt.types); got != tt.want {
			t.Fatalf("isNormalType(%v) = %v, want %v", tt.types, got, tt.want)
		}
	}
}
