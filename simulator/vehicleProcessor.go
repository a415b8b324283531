package simulator

import (
	"trafficSwarm/element"
	"trafficSwarm/roadnet"
)

// VehicleProcess 推进当前仿真环境中所有车辆的位置
// 中心车辆与生成车辆均沿路网按各自巡航速度前进
func VehicleProcess(net *roadnet.Network, entities *element.Entities, dt float64) {
	for _, vehicle := range entities.List() {
		vehicle.MoveAlong(net, dt)
	}
}
