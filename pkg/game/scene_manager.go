package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型，按名字延迟创建场景，避免循环依赖
type SceneFactory func() Scene

// 场景名
const (
	SceneLoading = "loading"
	SceneMain    = "main"
)

// SceneManager 管理当前激活的场景
// 同一时间只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	currentName  string
	factories    map[string]SceneFactory

	width, height int
}

// NewSceneManager 创建场景管理器，初始没有场景
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// SwitchTo 切换到指定场景
// 旧场景实现 Disposable 时先释放；新场景实现 Resizable 时立即同步当前尺寸
func (sm *SceneManager) SwitchTo(scene Scene) {
	if d, ok := sm.currentScene.(Disposable); ok && sm.currentScene != scene {
		d.Dispose()
	}
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// Load 通过已注册的工厂创建并切换场景
func (sm *SceneManager) Load(name string) error {
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("scene %q not registered", name)
	}
	scene := factory()
	if scene == nil {
		return fmt.Errorf("scene factory %q returned nil", name)
	}
	sm.SwitchTo(scene)
	sm.currentName = name
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

// GetCurrentScene 返回当前场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 最近一次通过 Load 切换的场景名
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Resize 记录逻辑屏幕尺寸并通知当前场景，尺寸不变时不通知
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Size 返回最近一次记录的逻辑屏幕尺寸
func (sm *SceneManager) Size() (int, int) {
	return sm.width, sm.height
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
