package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tapreward/pkg/render"
)

// cellSetter 终端单元格写入接口，tcell.Screen 实现了它
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// TerminalSurface 把场景节点栅格化到终端单元格
//
// 终端里没有纹理，所有精灵都按占位形状绘制；旋转被忽略。
// 逻辑坐标 (W x H) 按比例映射到 cols x rows 个单元格。
type TerminalSurface struct {
	*render.MemorySurface

	logicalW, logicalH float64
	cols, rows         int
	background         color.RGBA

	// OnSound 播放音效的回调，可为 nil
	OnSound func(id string)
}

// NewTerminalSurface 创建终端表面
func NewTerminalSurface(logicalW, logicalH float64, background color.RGBA) *TerminalSurface {
	return &TerminalSurface{
		MemorySurface: render.NewMemorySurface(),
		logicalW:      logicalW,
		logicalH:      logicalH,
		background:    background,
	}
}

// PlaySound 记录音效并交给 OnSound
func (ts *TerminalSurface) PlaySound(id string) {
	ts.MemorySurface.PlaySound(id)
	if ts.OnSound != nil {
		ts.OnSound(id)
	}
}

// SetCells 设置终端尺寸（单元格数）
func (ts *TerminalSurface) SetCells(cols, rows int) {
	ts.cols, ts.rows = max(cols, 1), max(rows, 1)
}

// ToLogical 把单元格坐标转换为该单元格中心的逻辑坐标
func (ts *TerminalSurface) ToLogical(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) * ts.logicalW / float64(ts.cols)
	y := (float64(row) + 0.5) * ts.logicalH / float64(ts.rows)
	return x, y
}

func (ts *TerminalSurface) toCell(x, y float64) (int, int) {
	col := int(math.Floor(x * float64(ts.cols) / ts.logicalW))
	row := int(math.Floor(y * float64(ts.rows) / ts.logicalH))
	return col, row
}

// Render 按层级绘制全部节点
func (ts *TerminalSurface) Render(dst cellSetter) {
	if ts.cols == 0 || ts.rows == 0 {
		return
	}
	bg := tcell.StyleDefault.Background(rgb(ts.background))
	for row := 0; row < ts.rows; row++ {
		for col := 0; col < ts.cols; col++ {
			dst.SetContent(col, row, ' ', nil, bg)
		}
	}

	for _, n := range ts.Nodes() {
		switch node := n.(type) {
		case *render.Sprite:
			ts.drawSprite(dst, node)
		case *render.Shape:
			if node.Visible && node.Alpha > 0 {
				ts.fill(dst, node.Bounds(), nil, node.Fill, node.Alpha)
			}
		case *render.Label:
			ts.drawLabel(dst, node)
		}
	}
}

func (ts *TerminalSurface) drawSprite(dst cellSetter, s *render.Sprite) {
	if !s.Visible || s.Alpha <= 0 {
		return
	}
	c := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	if s.Placeholder != nil {
		c = s.Placeholder.Fill
	}
	if s.Tint != nil {
		c = *s.Tint
	}
	ts.fill(dst, s.Bounds(), s.Clip, c, s.Alpha)
}

// fill 填充覆盖 r 的单元格，小于一个单元格的区域至少占用中心所在的单元格
func (ts *TerminalSurface) fill(dst cellSetter, r render.Rect, clip *render.Rect, c color.RGBA, alpha float64) {
	if clip != nil {
		r = r.Intersect(*clip)
		if r.Empty() {
			return
		}
	}

	col0, row0 := ts.toCell(r.X, r.Y)
	col1, row1 := ts.toCell(r.X+r.W, r.Y+r.H)
	if col1 <= col0 || row1 <= row0 {
		col0, row0 = ts.toCell(r.X+r.W/2, r.Y+r.H/2)
		col1, row1 = col0+1, row0+1
	}

	glyph := '█'
	if alpha < 0.5 {
		glyph = '▒'
	}
	style := tcell.StyleDefault.Foreground(rgb(c)).Background(rgb(ts.background))
	for row := max(row0, 0); row < min(row1, ts.rows); row++ {
		for col := max(col0, 0); col < min(col1, ts.cols); col++ {
			dst.SetContent(col, row, glyph, nil, style)
		}
	}
}

func (ts *TerminalSurface) drawLabel(dst cellSetter, l *render.Label) {
	if !l.Visible || l.Alpha <= 0 || l.Text == "" {
		return
	}
	text := []rune(l.Text)
	col, row := ts.toCell(l.X, l.Y)
	col -= len(text) / 2
	if row < 0 || row >= ts.rows {
		return
	}

	style := tcell.StyleDefault.Foreground(rgb(l.Color)).Background(rgb(ts.background)).Bold(true)
	for i, r := range text {
		if x := col + i; x >= 0 && x < ts.cols {
			dst.SetContent(x, row, r, nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
