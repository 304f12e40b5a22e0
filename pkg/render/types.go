// Package render 定义组件使用的绘制节点以及承载它们的渲染表面
package render

import "image/color"

// Rect 屏幕坐标系中的轴对齐矩形，(X, Y) 为左上角
type Rect struct {
	X, Y, W, H float64
}

// Contains 检查点是否落在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Intersect 返回两个矩形的交集，不相交时宽高为 0
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty 矩形面积为 0
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Insets 九宫格切片的四边宽度（纹理像素）
type Insets struct {
	Left, Right, Top, Bottom int
}

// ShapeKind 占位几何形状
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	// ShapePill 两端为半圆的圆角矩形
	ShapePill
)

// String 返回形状名称，用于日志和终端预览
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapePill:
		return "pill"
	default:
		return "rect"
	}
}

// Node 可加入 Surface 的绘制节点
// 所有节点的 (X, Y) 都是中心点坐标
type Node interface {
	// Layer 绘制层级，数值大的后绘制
	Layer() int
	// Bounds 节点当前的屏幕包围盒（含缩放，不含旋转）
	Bounds() Rect
}

// Sprite 纹理节点
type Sprite struct {
	Texture string
	X, Y    float64
	// 显示尺寸（缩放前），九宫格按此尺寸拉伸
	Width, Height float64

	NineSlice *Insets
	// Clip 非空时只绘制与之相交的部分（屏幕坐标），纹理被裁剪而不是缩放
	Clip *Rect

	ScaleX, ScaleY float64
	// Rotation 旋转角度（度）
	Rotation float64
	Alpha    float64
	Tint     *color.RGBA
	Visible  bool
	Z        int

	// Placeholder 纹理缺失时代替纹理绘制的形状，随 Sprite 的位置和变换绘制
	Placeholder *Shape
}

// NewSprite 创建一个可见、不透明、缩放为 1 的精灵
func NewSprite(texture string, x, y, width, height float64) *Sprite {
	return &Sprite{
		Texture: texture,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
	}
}

// SetScale 同时设置 X、Y 缩放
func (s *Sprite) SetScale(v float64) {
	s.ScaleX, s.ScaleY = v, v
}

func (s *Sprite) Layer() int { return s.Z }

func (s *Sprite) Bounds() Rect {
	w, h := s.Width*s.ScaleX, s.Height*s.ScaleY
	return Rect{X: s.X - w/2, Y: s.Y - h/2, W: w, H: h}
}

// Label 文本节点，以 (X, Y) 为中心对齐
type Label struct {
	Text        string
	X, Y        float64
	FontSize    float64
	Color       color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64
	Scale       float64
	Alpha       float64
	Visible     bool
	Z           int
}

// NewLabel 创建白色、无描边的文本
func NewLabel(text string, x, y, fontSize float64) *Label {
	return &Label{
		Text:     text,
		X:        x,
		Y:        y,
		FontSize: fontSize,
		Color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Scale:    1,
		Alpha:    1,
		Visible:  true,
	}
}

func (l *Label) Layer() int { return l.Z }

// Bounds 按等宽字符估算文本包围盒
func (l *Label) Bounds() Rect {
	w := float64(len([]rune(l.Text))) * l.FontSize * 0.6 * l.Scale
	h := l.FontSize * l.Scale
	return Rect{X: l.X - w/2, Y: l.Y - h/2, W: w, H: h}
}

// Shape 纯色几何节点
type Shape struct {
	Kind        ShapeKind
	X, Y        float64
	W, H        float64
	Fill        color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64
	Scale       float64
	Alpha       float64
	Visible     bool
	Z           int
}

// NewShape 创建一个可见的纯色形状
func NewShape(kind ShapeKind, x, y, w, h float64, fill color.RGBA) *Shape {
	return &Shape{
		Kind:    kind,
		X:       x,
		Y:       y,
		W:       w,
		H:       h,
		Fill:    fill,
		Scale:   1,
		Alpha:   1,
		Visible: true,
	}
}

// NewCircle 以半径创建圆形
func NewCircle(x, y, radius float64, fill color.RGBA) *Shape {
	return NewShape(ShapeCircle, x, y, radius*2, radius*2, fill)
}

func (s *Shape) Layer() int { return s.Z }

func (s *Shape) Bounds() Rect {
	w, h := s.W*s.Scale, s.H*s.Scale
	return Rect{X: s.X - w/2, Y: s.Y - h/2, W: w, H: h}
}

// RGB 由 0xRRGGBB 构造不透明颜色
func RGB(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}
