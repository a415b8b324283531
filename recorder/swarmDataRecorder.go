package recorder

import (
	"strconv"
	"sync"
)

var (
	swarmDataCache [][]string
	swarmDataMutex sync.Mutex
)

// InitSwarmDataCSV 初始化群体状态数据文件
func InitSwarmDataCSV(filename string) {
	initializeCSV(filename, []string{
		"Step", "SimTime", "LiveVehicles", "Spawned", "Despawned", "SolutionPoints",
	})
}

// RecordSwarmData 缓存一个时间步的群体状态
func RecordSwarmData(step int, simTime float64, live, spawned, despawned, points int) {
	swarmDataMutex.Lock()
	defer swarmDataMutex.Unlock()

	swarmDataCache = append(swarmDataCache, []string{
		strconv.Itoa(step),
		strconv.FormatFloat(simTime, 'f', 2, 64),
		strconv.Itoa(live),
		strconv.Itoa(spawned),
		strconv.Itoa(despawned),
		strconv.Itoa(points),
	})
}

// WriteToSwarmDataCSV 将缓存的群体状态数据写入文件并清空缓存
func WriteToSwarmDataCSV(filename string) {
	swarmDataMutex.Lock()
	defer swarmDataMutex.Unlock()

	if len(swarmDataCache) == 0 {
		return
	}
	appendToCSV(filename, swarmDataCache)
	swarmDataCache = swarmDataCache[:0]
}
