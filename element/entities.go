package element

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
)

// 共享的原子计数器，用于生成唯一的车辆ID
var vehicleIndex int64

// nextVehicleID 生成下一个唯一的车辆ID
func nextVehicleID() int64 {
	return atomic.AddInt64(&vehicleIndex, 1)
}

// Entities 表示仿真中的活动实体集合
// 由群体生命周期管理器独占持有，仅在生成与回收阶段被修改
type Entities struct {
	objects map[int64]*Vehicle
	byName  map[string]int64
	mu      sync.RWMutex
}

// NewEntities 创建一个空实体集合
func NewEntities() *Entities {
	return &Entities{
		objects: make(map[int64]*Vehicle),
		byName:  make(map[string]int64),
	}
}

// AddObject 将车辆加入实体集合并分配唯一ID
// 车辆名称为空时用分配到的ID作为名称
func (e *Entities) AddObject(v *Vehicle) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := nextVehicleID()
	v.mu.Lock()
	v.id = id
	if v.name == "" {
		v.name = strconv.FormatInt(id, 10)
	}
	name := v.name
	v.mu.Unlock()

	e.objects[id] = v
	e.byName[name] = id
	return id
}

// GetObjectByID 根据ID查找车辆
func (e *Entities) GetObjectByID(id int64) (*Vehicle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.objects[id]
	return v, ok
}

// RemoveObject 根据名称移除车辆
func (e *Entities) RemoveObject(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.byName[name]
	if !ok {
		return fmt.Errorf("entity %q not found", name)
	}
	delete(e.byName, name)
	delete(e.objects, id)
	return nil
}

// Count 返回当前活动实体数量
func (e *Entities) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.objects)
}

// List 返回所有活动车辆
func (e *Entities) List() []*Vehicle {
	e.mu.RLock()
	defer e.mu.RUnlock()

	vehicles := make([]*Vehicle, 0, len(e.objects))
	for _, v := range e.objects {
		vehicles = append(vehicles, v)
	}
	return vehicles
}
