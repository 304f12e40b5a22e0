package render

import "sort"

// Surface 组件挂载节点、查询纹理和播放音效的宿主表面
type Surface interface {
	HasTexture(key string) bool
	Add(node Node)
	Remove(node Node)
	PlaySound(id string)
}

// TextureSizer 可选接口：报告已加载纹理的原始像素尺寸
type TextureSizer interface {
	TextureSize(key string) (w, h float64, ok bool)
}

// nodeList 保持插入顺序的节点集合，EbitenSurface 和 MemorySurface 共用
type nodeList struct {
	nodes []Node
}

func (l *nodeList) add(n Node) {
	if n == nil || l.contains(n) {
		return
	}
	l.nodes = append(l.nodes, n)
}

func (l *nodeList) remove(n Node) {
	for i, existing := range l.nodes {
		if existing == n {
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			return
		}
	}
}

func (l *nodeList) contains(n Node) bool {
	for _, existing := range l.nodes {
		if existing == n {
			return true
		}
	}
	return false
}

// sorted 按层级排序，同层保持插入顺序
func (l *nodeList) sorted() []Node {
	out := make([]Node, len(l.nodes))
	copy(out, l.nodes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer() < out[j].Layer() })
	return out
}
