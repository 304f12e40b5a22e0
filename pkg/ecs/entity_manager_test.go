package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPosition struct {
	X, Y float64
}

type testVelocity struct {
	VX, VY float64
}

func TestCreateEntity_IDsStartAtOne(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 != 1 || id2 != 2 {
		t.Errorf("实体ID应从1开始递增, got %d, %d", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestGenericAndReflectAPIsAgree(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPosition{X: 100, Y: 200})

	// 反射 API 应能查到泛型 API 添加的组件
	comp, ok := em.GetComponent(id, reflect.TypeOf(&testPosition{}))
	if !ok {
		t.Fatal("反射 GetComponent 未找到泛型添加的组件")
	}
	if p := comp.(*testPosition); p.X != 100 || p.Y != 200 {
		t.Errorf("组件数据不匹配: %+v", p)
	}

	// 反之亦然
	em.AddComponent(id, &testVelocity{VX: 5})
	vel, ok := GetComponent[*testVelocity](em, id)
	if !ok || vel.VX != 5 {
		t.Errorf("泛型 GetComponent 未找到反射添加的组件: %v %v", vel, ok)
	}
}

func TestGetComponent_MissingEntity(t *testing.T) {
	em := NewEntityManager()

	p, ok := GetComponent[*testPosition](em, 42)
	if ok || p != nil {
		t.Errorf("不存在的实体应返回 (nil, false), got (%v, %v)", p, ok)
	}
	if HasComponent[*testPosition](em, 42) {
		t.Error("不存在的实体不应拥有组件")
	}
}

func TestDestroyEntity_DeferredUntilPurge(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPosition{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记

	if !em.Exists(id) {
		t.Error("清理前实体应仍存在")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("清理后实体应被删除")
	}
	if em.PendingDestroy() != 0 {
		t.Errorf("待删除列表应被清空, got %d", em.PendingDestroy())
	}
	if got := GetEntitiesWith1[*testPosition](em); len(got) != 0 {
		t.Errorf("清理后的实体不应出现在查询结果中: %v", got)
	}
}

func TestGetEntitiesWith_SortedAndFiltered(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		ids = append(ids, id)
		AddComponent(em, id, &testPosition{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocity{})
		}
	}

	both := GetEntitiesWith2[*testPosition, *testVelocity](em)
	want := []EntityID{ids[0], ids[2], ids[4]}
	if !reflect.DeepEqual(both, want) {
		t.Errorf("GetEntitiesWith2 = %v, want %v", both, want)
	}

	all := GetEntitiesWith1[*testPosition](em)
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("结果应按ID升序排列: %v", all)
		}
	}
	if len(all) != 5 {
		t.Errorf("GetEntitiesWith1 返回 %d 个实体, want 5", len(all))
	}
}

func TestRemoveComponent_Generic(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPosition{})
	AddComponent(em, id, &testVelocity{})

	RemoveComponent[*testVelocity](em, id)

	if HasComponent[*testVelocity](em, id) {
		t.Error("移除后不应再拥有 Velocity 组件")
	}
	if !HasComponent[*testPosition](em, id) {
		t.Error("Position 组件不应受影响")
	}
}

func TestDestroyEntity_UnknownIgnored(t *testing.T) {
	em := NewEntityManager()
	em.DestroyEntity(99)
	if em.PendingDestroy() != 0 {
		t.Errorf("不存在的实体不应被标记, got %d", em.PendingDestroy())
	}
}
