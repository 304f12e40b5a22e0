package ecs

import "reflect"

// typeOf 返回类型参数 T 对应的 reflect.Type
// 与 reflect.TypeOf(component) 的结果一致，保证泛型 API 与反射 API 可以混用
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 泛型版本：为实体添加组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if set, exists := em.entities[id]; exists {
		set[typeOf[T]()] = component
	}
}

// GetComponent 泛型版本：获取实体的 T 类型组件
//
// 用法：
//
//	p, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	set, exists := em.entities[id]
	if !exists {
		return zero, false
	}
	comp, found := set[typeOf[T]()]
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本：检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	set, exists := em.entities[id]
	if !exists {
		return false
	}
	_, found := set[typeOf[T]()]
	return found
}

// RemoveComponent 泛型版本：移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if set, exists := em.entities[id]; exists {
		delete(set, typeOf[T]())
	}
}

// GetEntitiesWith1 查询拥有组件 A 的所有实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的所有实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A](), typeOf[B]())
}
