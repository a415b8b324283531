package recorder

import (
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	vehicleDataCache [][]string
	vehicleDataMutex sync.Mutex
	recordIndex      int64 // 递增的唯一索引
)

// InitVehicleDataCSV 初始化车辆数据文件
func InitVehicleDataCSV(filename string) {
	initializeCSV(filename, []string{
		"Index", "VehicleID", "RoadID", "LaneID", "SpawnTime", "DespawnTime",
	})
}

// RecordVehicleData 缓存一条生成车辆的生命周期数据
// 在车辆被回收时调用，despawnTime为回收时刻
func RecordVehicleData(vehicleID, roadID int64, laneID int, spawnTime, despawnTime float64) {
	vehicleDataMutex.Lock()
	defer vehicleDataMutex.Unlock()

	idx := atomic.AddInt64(&recordIndex, 1)
	vehicleDataCache = append(vehicleDataCache, []string{
		strconv.FormatInt(idx, 10),
		strconv.FormatInt(vehicleID, 10),
		strconv.FormatInt(roadID, 10),
		strconv.Itoa(laneID),
		strconv.FormatFloat(spawnTime, 'f', 2, 64),
		strconv.FormatFloat(despawnTime, 'f', 2, 64),
	})
}

// WriteToVehicleDataCSV 将缓存的车辆数据写入文件并清空缓存
func WriteToVehicleDataCSV(filename string) {
	vehicleDataMutex.Lock()
	defer vehicleDataMutex.Unlock()

	if len(vehicleDataCache) == 0 {
		return
	}
	appendToCSV(filename, vehicleDataCache)
	vehicleDataCache = vehicleDataCache[:0]
}
