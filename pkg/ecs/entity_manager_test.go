package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type tag struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()

	assert.NotEqual(t, InvalidEntity, a)
	assert.NotEqual(t, a, b)
	assert.True(t, em.Exists(a))
	assert.Equal(t, 2, em.Count())
}

func TestComponentLifecycle(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &position{X: 1})
	p, ok := GetComponent[*position](em, id)
	require.True(t, ok)
	assert.Equal(t, 1.0, p.X)

	// 指针组件可原地修改
	p.X = 5
	p2, _ := GetComponent[*position](em, id)
	assert.Equal(t, 5.0, p2.X)

	assert.False(t, HasComponent[*velocity](em, id))
	RemoveComponent[*position](em, id)
	assert.False(t, HasComponent[*position](em, id))

	// 不存在的实体
	AddComponent(em, EntityID(999), &position{})
	_, ok = GetComponent[*position](em, EntityID(999))
	assert.False(t, ok)
}

func TestDeferredDestroy(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, tag{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	assert.True(t, em.Exists(id), "destroy is deferred until RemoveMarkedEntities")

	em.RemoveMarkedEntities()
	assert.False(t, em.Exists(id))
	assert.Equal(t, 0, em.Count())

	// 重复删除不存在的实体是空操作
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
}

func TestQueries(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()
	c := em.CreateEntity()

	AddComponent(em, a, &position{})
	AddComponent(em, b, &position{})
	AddComponent(em, b, &velocity{})
	AddComponent(em, c, &velocity{})
	AddComponent(em, c, &position{})
	AddComponent(em, c, tag{})

	assert.Equal(t, []EntityID{a, b, c}, GetEntitiesWith1[*position](em))
	assert.Equal(t, []EntityID{b, c}, GetEntitiesWith2[*position, *velocity](em))
	assert.Equal(t, []EntityID{c}, GetEntitiesWith3[*position, *velocity, tag](em))
	assert.Empty(t, GetEntitiesWith1[int](em))
}
