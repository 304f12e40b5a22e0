// Package modules 提供可复用的 UI 组件（进度条、资源状态条）
//
// 每个组件是独立的结构体，持有自己挂载到 render.Surface 上的节点，
// 通过 tween.Driver 驱动动画。组件之间通过组合使用，不存在容器继承。
package modules

// Widget 所有 UI 组件的公共接口
type Widget interface {
	// UpdateVisual 根据当前状态刷新节点
	UpdateVisual()
	// Destroy 从表面移除节点并停止动画
	Destroy()
}

var (
	_ Widget = (*ProgressIndicator)(nil)
	_ Widget = (*StatusStrip)(nil)
)
