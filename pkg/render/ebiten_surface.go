package render

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"

	eimage "github.com/ebitenui/ebitenui/image"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
)

// ImageSource 按资源 ID 提供已加载的图片，缺失时返回 nil
type ImageSource interface {
	GetImageByID(resourceID string) *ebiten.Image
}

// SoundPlayer 按资源 ID 播放音效
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

type nineSliceKey struct {
	texture string
	insets  Insets
}

// EbitenSurface 基于 ebiten 的渲染表面
//
// 九宫格拉伸使用 ebitenui 的 NineSlice，裁剪通过离屏图 + SubImage 实现，
// 文本使用 text/v2 + gobold，纹理缺失时用 vector 绘制占位形状。
type EbitenSurface struct {
	images ImageSource
	sounds SoundPlayer
	list   nodeList

	nineSlices map[nineSliceKey]*eimage.NineSlice
	offscreen  *ebiten.Image

	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace
}

// NewEbitenSurface 创建渲染表面，images 和 sounds 均可为 nil
func NewEbitenSurface(images ImageSource, sounds SoundPlayer) *EbitenSurface {
	es := &EbitenSurface{
		images:     images,
		sounds:     sounds,
		nineSlices: make(map[nineSliceKey]*eimage.NineSlice),
		faces:      make(map[float64]*text.GoTextFace),
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("[EbitenSurface] Failed to load bold font: %v", err)
	} else {
		es.fontSource = src
	}
	return es
}

func (es *EbitenSurface) HasTexture(key string) bool {
	return es.image(key) != nil
}

// TextureSize 返回纹理的原始像素尺寸
func (es *EbitenSurface) TextureSize(key string) (float64, float64, bool) {
	img := es.image(key)
	if img == nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy()), true
}

func (es *EbitenSurface) Add(node Node) {
	es.list.add(node)
}

func (es *EbitenSurface) Remove(node Node) {
	es.list.remove(node)
}

func (es *EbitenSurface) PlaySound(id string) {
	if es.sounds == nil {
		return
	}
	es.sounds.PlaySound(id)
}

// Clear 移除所有节点（切换场景时调用）
func (es *EbitenSurface) Clear() {
	es.list.nodes = nil
}

// Draw 按层级绘制全部可见节点
func (es *EbitenSurface) Draw(screen *ebiten.Image) {
	for _, n := range es.list.sorted() {
		switch node := n.(type) {
		case *Sprite:
			es.drawSprite(screen, node)
		case *Label:
			es.drawLabel(screen, node)
		case *Shape:
			if node.Visible && node.Alpha > 0 {
				drawShape(screen, node, node.X, node.Y, node.Scale, node.Alpha)
			}
		}
	}
}

func (es *EbitenSurface) image(key string) *ebiten.Image {
	if es.images == nil || key == "" {
		return nil
	}
	return es.images.GetImageByID(key)
}

func (es *EbitenSurface) drawSprite(screen *ebiten.Image, s *Sprite) {
	if !s.Visible || s.Alpha <= 0 {
		return
	}

	img := es.image(s.Texture)
	if img == nil && s.Placeholder == nil {
		return
	}

	w, h := s.Width, s.Height
	if img != nil && (w <= 0 || h <= 0) {
		b := img.Bounds()
		w, h = float64(b.Dx()), float64(b.Dy())
	}
	sw, sh := w*s.ScaleX, h*s.ScaleY
	if sw < 1 || sh < 1 {
		return
	}

	var cs ebiten.ColorScale
	if s.Tint != nil {
		cs.Scale(float32(s.Tint.R)/255, float32(s.Tint.G)/255, float32(s.Tint.B)/255, 1)
	}
	cs.ScaleAlpha(float32(s.Alpha))

	// 纹理直接绘制：无裁剪
	if img != nil && s.Clip == nil {
		var geo ebiten.GeoM
		geo.Translate(-w/2, -h/2)
		geo.Scale(s.ScaleX, s.ScaleY)
		geo.Rotate(s.Rotation * math.Pi / 180)
		geo.Translate(s.X, s.Y)
		es.drawTexture(screen, s, img, w, h, geo, cs)
		return
	}

	// 其余情况先在离屏图上绘制缩放后的内容，再整体合成
	off := es.prepareOffscreen(int(math.Ceil(sw)), int(math.Ceil(sh)))
	if img != nil {
		var geo ebiten.GeoM
		geo.Scale(s.ScaleX, s.ScaleY)
		es.drawTexture(off, s, img, w, h, geo, ebiten.ColorScale{})
	} else {
		drawShape(off, s.Placeholder, sw/2, sh/2, s.ScaleX*s.Placeholder.Scale, s.Placeholder.Alpha)
	}

	bounds := Rect{X: s.X - sw/2, Y: s.Y - sh/2, W: sw, H: sh}
	op := &ebiten.DrawImageOptions{ColorScale: cs}

	if s.Clip != nil {
		region := bounds.Intersect(*s.Clip)
		if region.Empty() {
			return
		}
		x0 := int(math.Round(region.X - bounds.X))
		y0 := int(math.Round(region.Y - bounds.Y))
		x1 := int(math.Round(region.X - bounds.X + region.W))
		y1 := int(math.Round(region.Y - bounds.Y + region.H))
		if x1 <= x0 || y1 <= y0 {
			return
		}
		sub := off.SubImage(image.Rect(x0, y0, x1, y1)).(*ebiten.Image)
		op.GeoM.Translate(bounds.X+float64(x0), bounds.Y+float64(y0))
		screen.DrawImage(sub, op)
		return
	}

	sub := off.SubImage(image.Rect(0, 0, int(math.Ceil(sw)), int(math.Ceil(sh)))).(*ebiten.Image)
	op.GeoM.Translate(-sw/2, -sh/2)
	op.GeoM.Rotate(s.Rotation * math.Pi / 180)
	op.GeoM.Translate(s.X, s.Y)
	screen.DrawImage(sub, op)
}

// drawTexture 将纹理按显示尺寸 w x h 绘制，geo 为局部到目标的变换
func (es *EbitenSurface) drawTexture(dst *ebiten.Image, s *Sprite, img *ebiten.Image, w, h float64, geo ebiten.GeoM, cs ebiten.ColorScale) {
	if s.NineSlice != nil {
		ns := es.nineSlice(s.Texture, img, *s.NineSlice)
		ns.Draw(dst, int(math.Round(w)), int(math.Round(h)), func(opts *ebiten.DrawImageOptions) {
			opts.GeoM.Concat(geo)
			opts.ColorScale.ScaleWithColorScale(cs)
			opts.Filter = ebiten.FilterLinear
		})
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Concat(geo)
	op.ColorScale = cs
	dst.DrawImage(img, op)
}

func (es *EbitenSurface) nineSlice(texture string, img *ebiten.Image, in Insets) *eimage.NineSlice {
	key := nineSliceKey{texture: texture, insets: in}
	if ns, ok := es.nineSlices[key]; ok {
		return ns
	}

	b := img.Bounds()
	centerW := max(b.Dx()-in.Left-in.Right, 1)
	centerH := max(b.Dy()-in.Top-in.Bottom, 1)
	ns := eimage.NewNineSlice(img,
		[3]int{in.Left, centerW, in.Right},
		[3]int{in.Top, centerH, in.Bottom})
	es.nineSlices[key] = ns
	return ns
}

func (es *EbitenSurface) prepareOffscreen(w, h int) *ebiten.Image {
	if es.offscreen != nil {
		b := es.offscreen.Bounds()
		if b.Dx() >= w && b.Dy() >= h {
			es.offscreen.Clear()
			return es.offscreen
		}
		es.offscreen.Deallocate()
	}
	es.offscreen = ebiten.NewImage(max(w, 1), max(h, 1))
	return es.offscreen
}

func (es *EbitenSurface) face(size float64) *text.GoTextFace {
	if f, ok := es.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: es.fontSource, Size: size}
	es.faces[size] = f
	return f
}

func (es *EbitenSurface) drawLabel(screen *ebiten.Image, l *Label) {
	if !l.Visible || l.Alpha <= 0 || l.Text == "" || es.fontSource == nil {
		return
	}
	f := es.face(l.FontSize)

	draw := func(dx, dy float64, c color.RGBA) {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(dx, dy)
		op.GeoM.Scale(l.Scale, l.Scale)
		op.GeoM.Translate(l.X, l.Y)
		op.ColorScale.ScaleWithColor(c)
		op.ColorScale.ScaleAlpha(float32(l.Alpha))
		text.Draw(screen, l.Text, f, op)
	}

	if l.StrokeWidth > 0 {
		sw := l.StrokeWidth
		for _, d := range [8][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
			draw(d[0]*sw, d[1]*sw, l.StrokeColor)
		}
	}
	draw(0, 0, l.Color)
}

// drawShape 以 (cx, cy) 为中心绘制形状
func drawShape(dst *ebiten.Image, s *Shape, cx, cy, scale, alpha float64) {
	fill := fade(s.Fill, alpha)
	w := float32(s.W * scale)
	h := float32(s.H * scale)
	x := float32(cx) - w/2
	y := float32(cy) - h/2

	switch s.Kind {
	case ShapeCircle:
		r := min(w, h) / 2
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), r, fill, true)
		if s.StrokeWidth > 0 {
			vector.StrokeCircle(dst, float32(cx), float32(cy), r, float32(s.StrokeWidth), fade(s.StrokeColor, alpha), true)
		}
	case ShapePill:
		r := h / 2
		if w <= h {
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), min(w, h)/2, fill, true)
			if s.StrokeWidth > 0 {
				vector.StrokeCircle(dst, float32(cx), float32(cy), min(w, h)/2, float32(s.StrokeWidth), fade(s.StrokeColor, alpha), true)
			}
			return
		}
		vector.DrawFilledRect(dst, x+r, y, w-2*r, h, fill, true)
		vector.DrawFilledCircle(dst, x+r, float32(cy), r, fill, true)
		vector.DrawFilledCircle(dst, x+w-r, float32(cy), r, fill, true)
		if s.StrokeWidth > 0 {
			outline := pillOutline(x, y, w, h, pillArcSegments)
			stroke := fade(s.StrokeColor, alpha)
			for i := 1; i < len(outline); i++ {
				a, b := outline[i-1], outline[i]
				vector.StrokeLine(dst, a[0], a[1], b[0], b[1], float32(s.StrokeWidth), stroke, true)
			}
		}
	default:
		vector.DrawFilledRect(dst, x, y, w, h, fill, true)
		if s.StrokeWidth > 0 {
			vector.StrokeRect(dst, x, y, w, h, float32(s.StrokeWidth), fade(s.StrokeColor, alpha), true)
		}
	}
}

// pillArcSegments 每个半圆端头的折线段数
const pillArcSegments = 16

// pillOutline 返回胶囊轮廓的闭合折线，要求 w > h
//
// 从上边左端点开始顺时针：上边、右半圆、下边、左半圆，末点与首点重合。
func pillOutline(x, y, w, h float32, segments int) [][2]float32 {
	r := h / 2
	cy := y + r
	left, right := x+r, x+w-r
	points := make([][2]float32, 0, 2*segments+3)
	points = append(points, [2]float32{left, y})
	arc := func(cx float32, from float64) {
		for i := 0; i <= segments; i++ {
			a := from + math.Pi*float64(i)/float64(segments)
			points = append(points, [2]float32{
				cx + r*float32(math.Cos(a)),
				cy + r*float32(math.Sin(a)),
			})
		}
	}
	arc(right, -math.Pi/2)
	arc(left, math.Pi/2)
	return points
}

// fade 返回按 alpha 缩放后的预乘颜色
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
