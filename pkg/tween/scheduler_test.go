package tween

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60.0

func TestTween_ReachesTargetAtDuration(t *testing.T) {
	s := NewScheduler()
	var values []float64
	completed := 0

	s.Tween(0, 1, 0.3, EaseOutCubic, func(v float64) { values = append(values, v) }, func() { completed++ })

	for i := 0; i < 17; i++ {
		s.Update(frame)
	}
	require.Equal(t, 0, completed, "0.3 秒前不应完成")
	assert.Less(t, values[len(values)-1], 1.0)

	s.Update(frame) // 第 18 帧 = 0.3 秒
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1.0, values[len(values)-1])

	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i], values[i-1], "补间值应单调")
	}
	assert.Equal(t, 0, s.Len(), "完成的任务应被移除")
}

func TestTween_AddedDuringUpdateStartsNextTick(t *testing.T) {
	s := NewScheduler()
	var inner *Tween
	innerSteps := 0

	s.After(0, func() {
		inner = s.Tween(0, 10, 1, nil, func(float64) { innerSteps++ }, nil)
	})

	s.Update(frame)
	require.NotNil(t, inner)
	assert.Equal(t, 0, innerSteps, "回调中加入的补间不应在同一帧推进")

	s.Update(frame)
	assert.Equal(t, 1, innerSteps)
}

func TestTween_Redirect(t *testing.T) {
	s := NewScheduler()
	var last float64
	tw := s.Tween(0, 1, 0.3, EaseLinear, func(v float64) { last = v }, nil)

	for i := 0; i < 9; i++ {
		s.Update(frame)
	}
	mid := tw.Value()
	require.InDelta(t, 0.5, mid, 0.01)

	tw.Redirect(mid, 0.2)
	assert.Equal(t, 1, s.Len(), "重定向不应叠加新任务")

	for i := 0; i < 18; i++ {
		s.Update(frame)
	}
	assert.InDelta(t, 0.2, last, 1e-9)
	assert.False(t, tw.Running())

	// 已完成的补间重定向后重新运行
	tw.Redirect(0.2, 0.8)
	assert.True(t, tw.Running())
	for i := 0; i < 18; i++ {
		s.Update(frame)
	}
	assert.InDelta(t, 0.8, last, 1e-9)
}

func TestTween_RedirectInsideOnComplete(t *testing.T) {
	s := NewScheduler()
	rounds := 0
	var tw *Tween
	tw = s.Tween(1, 1.3, 0.1, nil, nil, func() {
		rounds++
		if rounds == 1 {
			tw.Redirect(1.3, 1)
		}
	})

	for i := 0; i < 30; i++ {
		s.Update(frame)
	}
	assert.Equal(t, 2, rounds)
	assert.Equal(t, 1.0, tw.Value())
	assert.Equal(t, 0, s.Len())
}

func TestTween_StopSuppressesCallbacks(t *testing.T) {
	s := NewScheduler()
	called := false
	tw := s.Tween(0, 1, 0.1, nil, nil, func() { called = true })
	s.Update(frame)
	tw.Stop()

	for i := 0; i < 10; i++ {
		s.Update(frame)
	}
	assert.False(t, called)
	assert.Equal(t, 0, s.Len())
}

func TestTween_StopThenRedirectDoesNotDoubleStep(t *testing.T) {
	s := NewScheduler()
	steps := 0
	tw := s.Tween(0, 1, 1, nil, func(float64) { steps++ }, nil)
	s.Update(frame)

	tw.Stop()
	tw.Redirect(0, 1)
	s.Update(frame)

	assert.Equal(t, 2, steps)
	assert.Equal(t, 1, s.Len())
}

func TestTween_ZeroDurationCompletesImmediately(t *testing.T) {
	s := NewScheduler()
	var got float64
	s.Tween(3, 7, 0, nil, func(v float64) { got = v }, nil)
	s.Update(frame)
	assert.Equal(t, 7.0, got)
}

func TestTimer(t *testing.T) {
	s := NewScheduler()
	fired := 0
	tm := s.After(0.25, func() { fired++ })

	for i := 0; i < 14; i++ {
		s.Update(frame)
	}
	assert.Equal(t, 0, fired)
	s.Update(frame) // 15 帧 = 0.25 秒
	assert.Equal(t, 1, fired)
	assert.True(t, tm.Fired())

	s.Update(frame)
	assert.Equal(t, 1, fired, "定时器只触发一次")

	stopped := s.After(0.1, func() { fired++ })
	stopped.Stop()
	for i := 0; i < 10; i++ {
		s.Update(frame)
	}
	assert.Equal(t, 1, fired)
	assert.False(t, stopped.Fired())
}

func TestScheduler_Now(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 60; i++ {
		s.Update(frame)
	}
	assert.True(t, math.Abs(s.Now()-1) < 1e-9)
	s.Update(-1)
	assert.True(t, math.Abs(s.Now()-1) < 1e-9, "负 dt 视为 0")
}
