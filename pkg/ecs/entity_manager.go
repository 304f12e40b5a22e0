// Package ecs 提供最小化的实体-组件存储
package ecs

import "reflect"

// EntityID 实体标识，0 保留为无效 ID
type EntityID uint64

type componentSet map[reflect.Type]any

// EntityManager 实体和组件的存储
//
// 粒子这类短生命周期对象以实体形式存在，由系统在 Update 中读写组件。
// 实体按创建顺序保存在 order 中，查询结果天然按 ID 升序。
// 非线程安全：只应在主循环中访问。
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]componentSet
	order    []EntityID
	// 延迟到 RemoveMarkedEntities 才真正删除
	marked map[EntityID]struct{}
}

// NewEntityManager 创建空的实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]componentSet),
		marked:   make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = make(componentSet)
	em.order = append(em.order, id)
	return id
}

// DestroyEntity 标记实体待删除，重复标记无副作用
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.entities[id]; ok {
		em.marked[id] = struct{}{}
	}
}

// Exists 实体是否存活（已标记但未清理的仍算存活）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 存活实体数
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// PendingDestroy 已标记但尚未清理的实体数
func (em *EntityManager) PendingDestroy() int {
	return len(em.marked)
}

// AddComponent 以组件的动态类型为键添加组件，同类型组件会被替换
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if set, ok := em.entities[id]; ok {
		set[reflect.TypeOf(component)] = component
	}
}

// GetComponent 按类型读取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	set, ok := em.entities[id]
	if !ok {
		return nil, false
	}
	comp, found := set[componentType]
	return comp, found
}

// RemoveMarkedEntities 删除所有被标记的实体，在每帧系统更新结束后调用
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.marked) == 0 {
		return
	}
	kept := em.order[:0]
	for _, id := range em.order {
		if _, dead := em.marked[id]; dead {
			delete(em.entities, id)
			continue
		}
		kept = append(kept, id)
	}
	em.order = kept
	clear(em.marked)
}

// GetEntitiesWith 返回同时拥有所有指定组件类型的实体，按 ID 升序
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0, len(em.order))
	for _, id := range em.order {
		set := em.entities[id]
		if hasAll(set, componentTypes) {
			result = append(result, id)
		}
	}
	return result
}

func hasAll(set componentSet, types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
