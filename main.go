package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"trafficSwarm/config"
	"trafficSwarm/element"
	"trafficSwarm/log"
	"trafficSwarm/recorder"
	"trafficSwarm/roadnet"
	"trafficSwarm/simulator"
)

func main() {
	// 加载配置文件
	if err := config.LoadConfig("config/config.json"); err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// 生成唯一的初始化时间标识
	initTime := time.Now().Format("2006010215040506")

	// 初始化资源
	dataFiles := initializeResources(cfg, initTime)
	defer log.CloseLog()

	// 初始化模拟环境
	net, central, entities, swarm := initializeSimulationEnvironment(cfg)

	// 开始模拟
	log.WriteLog("----------------------------------Simulation Start----------------------------------")
	runSimulation(cfg, net, central, entities, swarm, dataFiles)

	// 完成模拟，写入最后的数据
	finishSimulation(dataFiles)

	log.WriteLog("---------------------------------- Completed ----------------------------------")
}

// 初始化系统资源
func initializeResources(cfg *config.Config, initTime string) map[string]string {
	// 日志初始化
	logFile := fmt.Sprintf("./log/%s_%d.log", initTime, cfg.Swarm.NumberOfVehicles)
	log.InitLog(logFile)
	log.LogEnvironment()

	// 记录模拟参数
	log.LogSwarmParameters(
		cfg.Swarm.InnerRadius,
		cfg.Swarm.SemiMajorAxis,
		cfg.Swarm.SemiMinorAxis,
		cfg.Swarm.NumberOfVehicles,
		cfg.Swarm.Velocity,
	)
	log.WriteLog(fmt.Sprintf("仿真步长: %.3f秒, 总时长: %.1f秒", cfg.Simulation.TimeStep, cfg.Simulation.Duration))
	log.WriteLog(fmt.Sprintf("路网类型: %s", cfg.Network.NetworkType))

	// 数据CSV初始化
	if err := os.MkdirAll("./data", 0755); err != nil {
		panic(fmt.Sprintf("Failed to create data directory: %v", err))
	}
	swarmDataFile := fmt.Sprintf("./data/%s_%d_SwarmData.csv", initTime, cfg.Swarm.NumberOfVehicles)
	vehicleDataFile := fmt.Sprintf("./data/%s_%d_VehicleData.csv", initTime, cfg.Swarm.NumberOfVehicles)

	recorder.InitSwarmDataCSV(swarmDataFile)
	recorder.InitVehicleDataCSV(vehicleDataFile)

	return map[string]string{
		"swarm":   swarmDataFile,
		"vehicle": vehicleDataFile,
	}
}

// 初始化模拟环境
func initializeSimulationEnvironment(cfg *config.Config) (*roadnet.Network, *element.Vehicle, *element.Entities, *simulator.SwarmTraffic) {
	var net *roadnet.Network

	// 根据配置选择创建的路网类型
	switch cfg.Network.NetworkType {
	case "ring":
		net = roadnet.CreateRingNetwork(
			cfg.Network.Ring.Radius,
			cfg.Network.Ring.NumRoads,
			cfg.Network.Ring.NumLanes,
		)
	case "stadium":
		net = roadnet.CreateStadiumNetwork(
			cfg.Network.Stadium.StraightLength,
			cfg.Network.Stadium.Radius,
			cfg.Network.Stadium.NumLanes,
		)
	default:
		log.WriteLog(fmt.Sprintf("未知的路网类型: %s，使用默认环形路网", cfg.Network.NetworkType))
		net = roadnet.CreateRingNetwork(
			cfg.Network.Ring.Radius,
			cfg.Network.Ring.NumRoads,
			cfg.Network.Ring.NumLanes,
		)
	}

	log.WriteLog(fmt.Sprintf("道路总数: %d", net.NumRoads()))
	log.WriteLog(fmt.Sprintf("路网强连通性: %v", net.IsStronglyConnected()))

	// 创建实体集合与中心车辆
	entities := element.NewEntities()
	central := element.NewVehicle("central", cfg.CentralVehicle.Speed)
	central.SetLanePosition(net, net.RoadByIdx(0).ID(), -1, 0, false)
	entities.AddObject(central)

	// 创建随机数发生器，种子为0时使用时间种子
	seed := cfg.Swarm.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	// 创建群体交通动作
	swarm := simulator.NewSwarmTraffic(net, entities, central, simulator.SwarmConfig{
		InnerRadius:      cfg.Swarm.InnerRadius,
		SemiMajorAxis:    cfg.Swarm.SemiMajorAxis,
		SemiMinorAxis:    cfg.Swarm.SemiMinorAxis,
		NumberOfVehicles: cfg.Swarm.NumberOfVehicles,
		Velocity:         cfg.Swarm.Velocity,
	}, rng)

	return net, central, entities, swarm
}

// 运行模拟
func runSimulation(cfg *config.Config, net *roadnet.Network, central *element.Vehicle,
	entities *element.Entities, swarm *simulator.SwarmTraffic, dataFiles map[string]string) {

	dt := cfg.Simulation.TimeStep
	numSteps := int(cfg.Simulation.Duration / dt)

	simTime := 0.0
	swarm.Start(simTime)

	for step := 0; step < numSteps; step++ {
		// 推进所有车辆
		simulator.VehicleProcess(net, entities, dt)

		// 群体交通动作按固定间隔自限频
		swarm.Step(dt, simTime)

		// 记录系统状态
		spawned, despawned, points := swarm.LastStats()
		recorder.RecordSwarmData(step, simTime, swarm.Live(), spawned, despawned, points)

		// 按间隔输出日志
		if step%cfg.Logging.IntervalWriteToLog == 0 {
			cPos := central.Position()
			log.WriteLog(fmt.Sprintf("Time: %s, Live: %d, Spawned: %d, Despawned: %d, Points: %d, Central: (%.1f, %.1f)",
				log.ConvertTimeStepToTime(simTime), swarm.Live(), spawned, despawned, points, cPos.X, cPos.Y))
		}

		// 按间隔写入数据
		if step > 0 && step%cfg.Logging.IntervalWriteData == 0 {
			writeData(dataFiles)
		}

		simTime += dt
	}
}

// writeData 同步写入数据，处理写入过程中的panic
func writeData(dataFiles map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			log.WriteLog(fmt.Sprintf("Panic occurred during data write: %v", r))
		}
	}()

	recorder.WriteToSwarmDataCSV(dataFiles["swarm"])
	recorder.WriteToVehicleDataCSV(dataFiles["vehicle"])
}

// 完成模拟，写入最后的数据
func finishSimulation(dataFiles map[string]string) {
	log.WriteLog("Writing final data...")

	startTime := time.Now()
	writeData(dataFiles)
	elapsedTime := time.Since(startTime)

	log.WriteLog(fmt.Sprintf("Final data write completed in %v", elapsedTime))
}
