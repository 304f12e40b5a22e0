package render

// MemorySurface 无窗口的渲染表面，只记录节点和音效调用
// 用于单元测试和无头运行
type MemorySurface struct {
	textures map[string]bool
	sizes    map[string][2]float64
	list     nodeList
	Sounds   []string
}

// NewMemorySurface 创建内存表面，textures 为视为已加载的纹理键
func NewMemorySurface(textures ...string) *MemorySurface {
	ms := &MemorySurface{textures: make(map[string]bool), sizes: make(map[string][2]float64)}
	for _, t := range textures {
		ms.textures[t] = true
	}
	return ms
}

func (ms *MemorySurface) HasTexture(key string) bool {
	return ms.textures[key]
}

func (ms *MemorySurface) Add(node Node) {
	ms.list.add(node)
}

func (ms *MemorySurface) Remove(node Node) {
	ms.list.remove(node)
}

func (ms *MemorySurface) PlaySound(id string) {
	ms.Sounds = append(ms.Sounds, id)
}

// Nodes 返回按绘制顺序排列的节点
func (ms *MemorySurface) Nodes() []Node {
	return ms.list.sorted()
}

// Contains 节点是否仍挂载在表面上
func (ms *MemorySurface) Contains(node Node) bool {
	return ms.list.contains(node)
}

// Len 返回挂载的节点数
func (ms *MemorySurface) Len() int {
	return len(ms.list.nodes)
}

// Sprites 返回使用指定纹理的精灵
func (ms *MemorySurface) Sprites(texture string) []*Sprite {
	var out []*Sprite
	for _, n := range ms.list.nodes {
		if s, ok := n.(*Sprite); ok && s.Texture == texture {
			out = append(out, s)
		}
	}
	return out
}

// Labels 返回所有文本节点
func (ms *MemorySurface) Labels() []*Label {
	var out []*Label
	for _, n := range ms.list.nodes {
		if l, ok := n.(*Label); ok {
			out = append(out, l)
		}
	}
	return out
}

// Clear 移除所有节点
func (ms *MemorySurface) Clear() {
	ms.list.nodes = nil
}

// SetTexture 标记纹理为已加载或未加载
func (ms *MemorySurface) SetTexture(key string, loaded bool) {
	ms.textures[key] = loaded
}

// Label 返回第一个文本等于 text 的节点
func (ms *MemorySurface) Label(text string) *Label {
	for _, l := range ms.Labels() {
		if l.Text == text {
			return l
		}
	}
	return nil
}

// SetTextureSize 标记纹理为已加载并记录其原始尺寸
func (ms *MemorySurface) SetTextureSize(key string, w, h float64) {
	ms.textures[key] = true
	ms.sizes[key] = [2]float64{w, h}
}

// TextureSize 返回由 SetTextureSize 记录的尺寸
func (ms *MemorySurface) TextureSize(key string) (float64, float64, bool) {
	if !ms.textures[key] {
		return 0, 0, false
	}
	sz, ok := ms.sizes[key]
	return sz[0], sz[1], ok
}
