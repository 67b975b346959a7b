package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testGlowComponent struct {
	Strength float64
}

type testSpinComponent struct {
	Angle float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testGlowComponent{Strength: 0.55})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testGlowComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if comp.(*testGlowComponent).Strength != 0.55 {
		t.Errorf("Component data mismatch: %v", comp)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testGlowComponent{Strength: 1.1})

	glow, ok := GetComponent[*testGlowComponent](em, id)
	if !ok {
		t.Fatal("泛型 GetComponent 未找到组件")
	}
	if glow.Strength != 1.1 {
		t.Errorf("Strength = %v, 期望 1.1", glow.Strength)
	}

	// 不存在的组件类型
	if _, ok := GetComponent[*testSpinComponent](em, id); ok {
		t.Error("不存在的组件类型应返回 false")
	}
	// 不存在的实体
	if _, ok := GetComponent[*testGlowComponent](em, 999); ok {
		t.Error("不存在的实体应返回 false")
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if em.HasComponent(id, reflect.TypeOf(&testGlowComponent{})) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testGlowComponent{})

	if !em.HasComponent(id, reflect.TypeOf(&testGlowComponent{})) {
		t.Error("Should have component after adding")
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testGlowComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在（延迟删除语义）
	if !em.HasEntity(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasEntity(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.HasComponent(id, reflect.TypeOf(&testGlowComponent{})) {
		t.Error("Components should be removed with the entity")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testGlowComponent{})
	em.AddComponent(id1, &testSpinComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testGlowComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testSpinComponent{})

	// 同时拥有两种组件的实体
	both := GetEntitiesWith2[*testGlowComponent, *testSpinComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("GetEntitiesWith2 = %v, 期望 [%d]", both, id1)
	}

	// 拥有单一组件的实体
	glows := GetEntitiesWith1[*testGlowComponent](em)
	if len(glows) != 2 {
		t.Errorf("GetEntitiesWith1 返回 %d 个实体, 期望 2", len(glows))
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testGlowComponent{})
	em.AddComponent(id, &testSpinComponent{})

	RemoveComponent[*testSpinComponent](em, id)

	if em.HasComponent(id, reflect.TypeOf(&testSpinComponent{})) {
		t.Error("RemoveComponent 后组件仍存在")
	}
	if !em.HasComponent(id, reflect.TypeOf(&testGlowComponent{})) {
		t.Error("RemoveComponent 误删了其他组件")
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	em.AddComponent(id1, &testGlowComponent{})
	em.AddComponent(id2, &testGlowComponent{})
	em.AddComponent(id3, &testGlowComponent{})

	// 同一帧标记多个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	if em.HasEntity(id1) || em.HasEntity(id3) {
		t.Error("marked entities should be removed")
	}
	if !em.HasEntity(id2) {
		t.Error("unmarked entity should survive")
	}

	// 清理列表已清空，重复清理是空操作
	em.RemoveMarkedEntities()
	if !em.HasEntity(id2) {
		t.Error("repeated cleanup removed a live entity")
	}
}
