package modules

import (
	"math"
	"testing"

	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/tween"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60.0

func newTestProgress(t *testing.T, cfg ProgressIndicatorConfig) (*ProgressIndicator, *render.MemorySurface, *tween.Scheduler) {
	t.Helper()
	surface := render.NewMemorySurface("slider_bg", "slider_fill")
	sched := tween.NewScheduler()
	return NewProgressIndicator(surface, sched, cfg), surface, sched
}

func TestProgressIndicator_DefaultsAndNodes(t *testing.T) {
	p, surface, _ := newTestProgress(t, ProgressIndicatorConfig{X: 200, Y: 100})

	assert.Equal(t, 3, surface.Len(), "背景、填充、文字各一个节点")
	assert.Equal(t, 0.0, p.Progress())
	assert.Equal(t, "0 / 100", p.Text())

	bg := surface.Sprites("slider_bg")
	require.Len(t, bg, 1)
	assert.Equal(t, render.Insets{Left: 13, Right: 13, Top: 34, Bottom: 34}, *bg[0].NineSlice)
	assert.Nil(t, bg[0].Placeholder)

	fill := surface.Sprites("slider_fill")
	require.Len(t, fill, 1)
	assert.Equal(t, render.Insets{Left: 9, Right: 9, Top: 30, Bottom: 30}, *fill[0].NineSlice)
	require.NotNil(t, fill[0].Clip)
	assert.Equal(t, 0.0, fill[0].Clip.W)
	assert.Equal(t, 400.0, fill[0].Width, "填充图保持完整宽度，只改变裁剪")
}

func TestProgressIndicator_SetProgressImmediate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.45, 0.45},
		{-3, 0},
		{7, 1},
		{1, 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		p, surface, _ := newTestProgress(t, ProgressIndicatorConfig{X: 200, Y: 100})
		p.SetProgress(tt.in, false)

		assert.Equal(t, tt.want, p.Progress())
		assert.Equal(t, tt.want, p.Target())

		clip := surface.Sprites("slider_fill")[0].Clip
		assert.InDelta(t, 400*tt.want, clip.W, 1e-9)
		assert.Equal(t, 50.0, clip.H)
		assert.Equal(t, 0.0, clip.X)
	}
}

func TestProgressIndicator_TextFormats(t *testing.T) {
	frac, _, _ := newTestProgress(t, ProgressIndicatorConfig{TextFormat: TextFormatFraction})
	frac.SetProgress(0.456, false)
	assert.Equal(t, "45 / 100", frac.Text())

	pct, _, _ := newTestProgress(t, ProgressIndicatorConfig{TextFormat: TextFormatPercentage})
	pct.SetProgress(0.999, false)
	assert.Equal(t, "99%", pct.Text())
	pct.SetProgress(1, false)
	assert.Equal(t, "100%", pct.Text())

	hidden, surface, _ := newTestProgress(t, ProgressIndicatorConfig{HideText: true})
	hidden.SetProgress(0.5, false)
	assert.Equal(t, "", hidden.Text())
	assert.Equal(t, 2, surface.Len())
	assert.Empty(t, surface.Labels())
}

func TestProgressIndicator_AnimatedMonotonic(t *testing.T) {
	p, _, sched := newTestProgress(t, ProgressIndicatorConfig{})
	p.SetProgress(0.8, true)

	assert.Equal(t, 0.8, p.Target())
	assert.Equal(t, 0.0, p.Progress(), "动画开始前不变")

	prev := 0.0
	for i := 0; i < 17; i++ {
		sched.Update(frame)
		cur := p.Progress()
		assert.GreaterOrEqual(t, cur, prev)
		assert.Less(t, cur, 0.8, "0.3 秒前不应到达目标")
		prev = cur
	}

	sched.Update(frame)
	assert.Equal(t, 0.8, p.Progress())

	sched.Update(frame)
	assert.Equal(t, 0.8, p.Progress())
}

func TestProgressIndicator_RedirectDoesNotStack(t *testing.T) {
	p, _, sched := newTestProgress(t, ProgressIndicatorConfig{})
	p.SetProgress(1, true)
	for i := 0; i < 6; i++ {
		sched.Update(frame)
	}
	mid := p.Progress()
	require.Greater(t, mid, 0.0)

	p.SetProgress(0.2, true)
	assert.Equal(t, 1, sched.Len(), "重定向不叠加第二个补间")

	for i := 0; i < 18; i++ {
		sched.Update(frame)
	}
	assert.Equal(t, 0.2, p.Progress())
}

func TestProgressIndicator_ImmediateCancelsAnimation(t *testing.T) {
	p, _, sched := newTestProgress(t, ProgressIndicatorConfig{})
	p.SetProgress(1, true)
	sched.Update(frame)

	p.SetProgress(0.3, false)
	for i := 0; i < 30; i++ {
		sched.Update(frame)
	}
	assert.Equal(t, 0.3, p.Progress())
}

func TestProgressIndicator_PlaceholdersWhenTexturesMissing(t *testing.T) {
	surface := render.NewMemorySurface()
	NewProgressIndicator(surface, tween.NewScheduler(), ProgressIndicatorConfig{})

	for _, n := range surface.Nodes() {
		if s, ok := n.(*render.Sprite); ok {
			require.NotNil(t, s.Placeholder, "缺失纹理 %s 应使用占位形状", s.Texture)
			assert.Equal(t, render.ShapePill, s.Placeholder.Kind)
		}
	}
}

func TestProgressIndicator_Destroy(t *testing.T) {
	p, surface, sched := newTestProgress(t, ProgressIndicatorConfig{})
	p.SetProgress(1, true)
	p.Destroy()

	assert.Equal(t, 0, surface.Len())
	sched.Update(frame)
	assert.Equal(t, 0.0, p.Progress(), "销毁后动画停止")
}
