package config

import (
	"encoding/json"
	"os"
)

// Config 保存所有配置项的顶级结构
type Config struct {
	Simulation     SimulationConfig     `json:"simulation"`
	Logging        LoggingConfig        `json:"logging"`
	Network        NetworkConfig        `json:"network"`
	CentralVehicle CentralVehicleConfig `json:"centralVehicle"`
	Swarm          SwarmConfig          `json:"swarm"`
}

// SimulationConfig 保存仿真循环相关的配置项
type SimulationConfig struct {
	TimeStep float64 `json:"timeStep"` // 仿真固定步长（秒）
	Duration float64 `json:"duration"` // 仿真总时长（秒）
}

// LoggingConfig 保存日志与数据写入相关的配置项
type LoggingConfig struct {
	IntervalWriteToLog int `json:"intervalWriteToLog"` // 每隔多少步输出一次状态日志
	IntervalWriteData  int `json:"intervalWriteData"`  // 每隔多少步写入一次CSV数据
}

// NetworkConfig 保存路网相关的配置项
type NetworkConfig struct {
	// 路网类型: "ring" - 环形路网, "stadium" - 跑道形路网
	NetworkType string `json:"networkType"`

	// 环形路网参数
	Ring struct {
		Radius   float64 `json:"radius"`
		NumRoads int     `json:"numRoads"`
		NumLanes int     `json:"numLanes"`
	} `json:"ring"`

	// 跑道形路网参数
	Stadium struct {
		StraightLength float64 `json:"straightLength"`
		Radius         float64 `json:"radius"`
		NumLanes       int     `json:"numLanes"`
	} `json:"stadium"`
}

// CentralVehicleConfig 保存中心车辆相关的配置项
type CentralVehicleConfig struct {
	Speed float64 `json:"speed"`
}

// SwarmConfig 保存群体交通相关的配置项
type SwarmConfig struct {
	InnerRadius      float64 `json:"innerRadius"`
	SemiMajorAxis    float64 `json:"semiMajorAxis"`
	SemiMinorAxis    float64 `json:"semiMinorAxis"`
	NumberOfVehicles int     `json:"numberOfVehicles"`
	Velocity         float64 `json:"velocity"`
	Seed             uint64  `json:"seed"` // 0表示使用时间种子
}

var globalConfig *Config

// LoadConfig loads configuration from the specified JSON file
func LoadConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return err
	}

	// 设置仿真参数的默认值
	if config.Simulation.TimeStep <= 0 {
		config.Simulation.TimeStep = 0.05
	}
	if config.Simulation.Duration <= 0 {
		config.Simulation.Duration = 60.0
	}

	// 设置日志参数的默认值
	if config.Logging.IntervalWriteToLog <= 0 {
		config.Logging.IntervalWriteToLog = 100
	}
	if config.Logging.IntervalWriteData <= 0 {
		config.Logging.IntervalWriteData = 200
	}

	// 设置路网参数的默认值
	if config.Network.NetworkType == "" {
		config.Network.NetworkType = "ring"
	}
	if config.Network.Ring.Radius <= 0 {
		config.Network.Ring.Radius = 200.0
	}
	if config.Network.Ring.NumRoads <= 0 {
		config.Network.Ring.NumRoads = 12
	}
	if config.Network.Ring.NumLanes <= 0 {
		config.Network.Ring.NumLanes = 2
	}
	if config.Network.Stadium.StraightLength <= 0 {
		config.Network.Stadium.StraightLength = 400.0
	}
	if config.Network.Stadium.Radius <= 0 {
		config.Network.Stadium.Radius = 100.0
	}
	if config.Network.Stadium.NumLanes <= 0 {
		config.Network.Stadium.NumLanes = 2
	}

	// 设置中心车辆参数的默认值
	if config.CentralVehicle.Speed <= 0 {
		config.CentralVehicle.Speed = 15.0
	}

	// 设置群体交通参数的默认值
	if config.Swarm.InnerRadius <= 0 {
		config.Swarm.InnerRadius = 40.0
	}
	if config.Swarm.SemiMajorAxis <= 0 {
		config.Swarm.SemiMajorAxis = 100.0
	}
	if config.Swarm.SemiMinorAxis <= 0 {
		config.Swarm.SemiMinorAxis = 80.0
	}
	if config.Swarm.NumberOfVehicles <= 0 {
		config.Swarm.NumberOfVehicles = 20
	}
	if config.Swarm.Velocity <= 0 {
		config.Swarm.Velocity = 10.0
	}

	globalConfig = config
	return nil
}

// GetConfig returns the global configuration instance
func GetConfig() *Config {
	return globalConfig
}
