package simulator

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"trafficSwarm/element"
	"trafficSwarm/geometry"
	"trafficSwarm/log"
	"trafficSwarm/recorder"
	"trafficSwarm/roadnet"
	"trafficSwarm/spatial"
	"trafficSwarm/utils"
)

const (
	uselessThreshold = 5    // 车辆连续位于中间椭圆外的最大检测次数，超过即回收
	vehicleDistance  = 12.0 // 同路同车道上两辆生成车辆的最小纵向间距
	timeInterval     = 0.1  // 两次有效step之间的仿真时间间隔
	borderTolerance  = 0.001
)

// SwarmConfig 群体交通动作的配置参数，在场景编排时固定
type SwarmConfig struct {
	InnerRadius      float64 // 内环半径
	SemiMajorAxis    float64 // 外椭圆长半轴
	SemiMinorAxis    float64 // 外椭圆短半轴
	NumberOfVehicles int     // 目标车辆数上限
	Velocity         float64 // 生成车辆的巡航速度
}

// SpawnInfo 记录一辆由引擎生成的存活车辆
// 与实体集合中的车辆一一对应，车辆回收时同步删除
type SpawnInfo struct {
	VehicleID       int64
	OutMidAreaCount int // 连续位于中间椭圆外的计数，回到椭圆内即清零
	RoadID          int64
	LaneID          int
	SimTime         float64 // 生成时刻
}

// SelectInfo 表示一个解析到道路上的候选生成位置及其车道配额
type SelectInfo struct {
	Pos    roadnet.Position
	Road   *roadnet.Road
	NLanes int
}

// SwarmTraffic 围绕中心车辆动态维持交通群体的动作
//
// 每个时间步：重建椭圆离散化，与静态道路树求交得到候选生成点，
// 回收离开兴趣区域的车辆，再按采样结果在候选点上生成新车辆
type SwarmTraffic struct {
	actionState

	net      *roadnet.Network
	entities *element.Entities
	central  *element.Vehicle
	cfg      SwarmConfig
	rng      *rand.Rand

	midSMjA  float64
	midSMnA  float64
	minSize  float64
	lastTime float64

	roadArena    *spatial.Arena
	rTree        *spatial.Tree
	ellipseArena *spatial.Arena

	spawned []SpawnInfo

	// 上一个有效时间步的统计量，供记录器读取
	lastSpawned   int
	lastDespawned int
	lastPoints    int
}

// NewSwarmTraffic 创建群体交通动作
// rng为注入的随机数发生器，测试中传入固定种子即可复现
func NewSwarmTraffic(net *roadnet.Network, entities *element.Entities, central *element.Vehicle, cfg SwarmConfig, rng *rand.Rand) *SwarmTraffic {
	if net == nil || entities == nil || central == nil {
		panic("network, entities and central object are required")
	}
	if cfg.NumberOfVehicles < 0 {
		panic("NumberOfVehicles must be non-negative")
	}
	if rng == nil {
		panic("random generator is required")
	}

	return &SwarmTraffic{
		net:      net,
		entities: entities,
		central:  central,
		cfg:      cfg,
		rng:      rng,
	}
}

// Start 执行一次性初始化
//
// 计算中间椭圆半轴与道路离散化分辨率，并构建静态道路树。
// 各道路的离散化相互独立，通过工作池并行执行后合并
func (s *SwarmTraffic) Start(simTime float64) {
	s.midSMjA = (s.cfg.SemiMajorAxis + s.cfg.InnerRadius) / 2
	s.midSMnA = (s.cfg.SemiMinorAxis + s.cfg.InnerRadius) / 2
	s.lastTime = -1

	s.minSize = geometry.MinTriangleSize(s.midSMjA, s.midSMnA)

	s.roadArena = spatial.NewArena()
	s.buildRoadTree()

	s.ellipseArena = spatial.NewArena()

	log.WriteLog(fmt.Sprintf("SwarmTraffic Start: minSize=%.2f, 道路三角形数=%d", s.minSize, s.roadArena.Len()))
	s.start()
}

// buildRoadTree 离散化全部道路并构建静态树
func (s *SwarmTraffic) buildRoadTree() {
	numRoads := s.net.NumRoads()
	partial := make([]*spatial.Arena, numRoads)

	pool := utils.NewWorkerPool(0)
	for i := 0; i < numRoads; i++ {
		i := i
		partial[i] = spatial.NewArena()
		pool.Submit(func() {
			geometry.TessellateRoad(s.net.RoadByIdx(i), s.minSize, partial[i])
		})
	}
	pool.Wait()
	pool.Stop()

	// 按道路顺序合并，保证Arena布局与输入顺序无关的确定性
	for _, pa := range partial {
		for i := 0; i < pa.Len(); i++ {
			s.roadArena.Add(pa.Tri(i))
		}
	}

	s.rTree = spatial.NewTree(s.roadArena)
	s.rTree.BuildAll()
}

// Step 执行一个仿真步
// 内部按固定时间间隔自限频，间隔不足时直接返回
func (s *SwarmTraffic) Step(dt, simTime float64) {
	if s.lastTime >= 0 && math.Abs(simTime-s.lastTime) <= timeInterval {
		return
	}

	// 几何刷新：在中间椭圆带上重建椭圆离散化
	cPos := s.central.Position()
	info := geometry.EllipseInfo{
		SMjA: s.midSMjA,
		SMnA: s.midSMnA,
		CX:   cPos.X,
		CY:   cPos.Y,
		Hdg:  cPos.H,
	}

	s.ellipseArena.Reset()
	geometry.TessellateEllipse(info, s.ellipseArena)
	eTree := spatial.NewTree(s.ellipseArena)
	eTree.BuildAll()

	// 查询：静态道路树与椭圆树求交，解析出真实交点
	var candidates []spatial.Candidate
	s.rTree.Intersect(eTree, &candidates)
	triangles := geometry.ProcessCandidates(candidates)
	sols := geometry.FindPoints(s.net, s.roadArena, triangles, info)
	s.lastPoints = len(sols)

	despawned := s.despawn(simTime)
	s.lastDespawned = despawned

	s.lastSpawned = s.spawn(sols, despawned, simTime)
	s.lastTime = simTime
}

// despawn 回收离开兴趣区域的车辆，返回回收数量
//
// 位于外椭圆之外的车辆立即回收；位于中间椭圆之外或恰在其边界上的
// 车辆累加计数，连续超过阈值后回收；回到中间椭圆内则计数清零
func (s *SwarmTraffic) despawn(simTime float64) int {
	cPos := s.central.Position()
	count := 0
	kept := s.spawned[:0]

	for i := range s.spawned {
		rec := s.spawned[i]
		vehicle, ok := s.entities.GetObjectByID(rec.VehicleID)
		if !ok {
			// 实体已被外部移除，丢弃孤儿记录
			continue
		}
		vPos := vehicle.Position()

		e0 := geometry.EllipseEval(cPos.X, cPos.Y, cPos.H, s.cfg.SemiMajorAxis, s.cfg.SemiMinorAxis, vPos.X, vPos.Y)
		e1 := geometry.EllipseEval(cPos.X, cPos.Y, cPos.H, s.midSMjA, s.midSMnA, vPos.X, vPos.Y)

		remove := false
		if e0 > borderTolerance { // 外椭圆之外
			remove = true
		} else if e1 >= 0 { // 中间椭圆之外或在边界上
			rec.OutMidAreaCount++
			if rec.OutMidAreaCount > uselessThreshold {
				remove = true
			}
		} else {
			rec.OutMidAreaCount = 0
		}

		if remove {
			if err := s.entities.RemoveObject(vehicle.Name()); err != nil {
				log.WriteLog(fmt.Sprintf("Warning: remove object failed: %v", err))
			}
			recorder.RecordVehicleData(rec.VehicleID, rec.RoadID, rec.LaneID, rec.SimTime, simTime)
			count++
			continue
		}
		kept = append(kept, rec)
	}

	s.spawned = kept
	return count
}

// spawn 在候选交点上生成新车辆，返回生成数量
// replace为本步回收数量，作为生成数量采样的下界
func (s *SwarmTraffic) spawn(sols []geometry.SolutionPoint, replace int, simTime float64) int {
	maxCars := s.cfg.NumberOfVehicles - len(s.spawned)
	if maxCars <= 0 {
		// 已达到目标车辆数，本步不生成
		return 0
	}

	info := s.sampleRoads(replace, maxCars, sols)

	created := 0
	for _, inf := range info {
		lanesNo := inf.Road.NumberOfDrivingLanes(inf.Pos.S)
		laneIdxs := utils.SampleInts(s.rng, lanesNo, inf.NLanes)

		for _, laneIdx := range laneIdxs {
			lane, ok := inf.Road.DrivingLaneByIdx(inf.Pos.S, laneIdx)
			if !ok {
				log.WriteLog("Warning: invalid lane index")
				continue
			}
			laneID := lane.ID()
			if !s.ensureDistance(inf.Pos, laneID) {
				continue
			}

			vehicle := element.NewVehicle("", s.cfg.Velocity)
			// 正ID车道沿道路反方向行驶，航向翻转π
			vehicle.SetLanePosition(s.net, inf.Pos.RoadID, laneID, inf.Pos.S, laneID > 0)
			id := s.entities.AddObject(vehicle)

			s.spawned = append(s.spawned, SpawnInfo{
				VehicleID: id,
				RoadID:    inf.Pos.RoadID,
				LaneID:    laneID,
				SimTime:   simTime,
			})
			created++
		}
	}
	return created
}

// sampleRoads 采样生成数量并把候选点解析为带车道配额的道路位置
//
// 交点数量足够时随机选取与生成数量相同的点，每点一条车道；
// 交点不足时全部使用，并将缺口按均匀分布摊给各点，
// 无可行驶车道的道路把配额退还给剩余点
func (s *SwarmTraffic) sampleRoads(minN, maxN int, sols []geometry.SolutionPoint) []SelectInfo {
	if maxN < minN {
		log.WriteLog("Unstable behavior detected (maxN < minN)")
		return nil
	}

	nCarsToSpawn := minN + s.rng.Intn(maxN-minN+1)
	if nCarsToSpawn <= 0 {
		return nil
	}

	info := make([]SelectInfo, 0, nCarsToSpawn)

	if nCarsToSpawn <= len(sols) {
		// 随机打乱后选取所需数量的点，每点恰好一条车道
		utils.Shuffle(s.rng, sols)
		for _, pt := range sols[:nCarsToSpawn] {
			pos, err := s.net.PositionFromXYH(pt.X, pt.Y, pt.H)
			if err != nil {
				log.WriteLog(fmt.Sprintf("Warning: %v", err))
				continue
			}
			road, ok := s.net.RoadByID(pos.RoadID)
			if !ok || road.NumberOfDrivingLanes(pos.S) == 0 {
				continue
			}
			info = append(info, SelectInfo{Pos: pos, Road: road, NLanes: 1})
		}
		return info
	}

	// 点数少于生成数量：每点至少一条车道，剩余配额随机分摊。
	// 该算法不保证用满采样到的生成数量
	lanesLeft := nCarsToSpawn - len(sols)
	for _, pt := range sols {
		pos, err := s.net.PositionFromXYH(pt.X, pt.Y, pt.H)
		if err != nil {
			log.WriteLog(fmt.Sprintf("Warning: %v", err))
			continue
		}
		road, ok := s.net.RoadByID(pos.RoadID)
		if !ok {
			continue
		}
		nDrivingLanes := road.NumberOfDrivingLanes(pos.S)
		if nDrivingLanes == 0 {
			lanesLeft++
			continue
		}

		lanesN := 0
		if lanesLeft > 0 {
			bound := lanesLeft
			if nDrivingLanes < bound {
				bound = nDrivingLanes
			}
			if draw := s.rng.Intn(bound + 1); draw > 0 {
				lanesN = draw - 1
			}
		}

		info = append(info, SelectInfo{Pos: pos, Road: road, NLanes: 1 + lanesN})
		lanesLeft -= lanesN
	}
	return info
}

// ensureDistance 检查候选位置与同路同车道的存活生成车辆是否保持最小间距
func (s *SwarmTraffic) ensureDistance(pos roadnet.Position, laneID int) bool {
	for _, rec := range s.spawned {
		if rec.LaneID != laneID || rec.RoadID != pos.RoadID {
			continue
		}
		vehicle, ok := s.entities.GetObjectByID(rec.VehicleID)
		if !ok {
			continue
		}
		if math.Abs(vehicle.Position().S-pos.S) <= vehicleDistance {
			return false
		}
	}
	return true
}

// Live 返回当前存活的生成车辆数量
func (s *SwarmTraffic) Live() int {
	return len(s.spawned)
}

// SpawnRecords 返回生成记录的副本
func (s *SwarmTraffic) SpawnRecords() []SpawnInfo {
	recs := make([]SpawnInfo, len(s.spawned))
	copy(recs, s.spawned)
	return recs
}

// LastStats 返回上一个有效时间步的统计量
// 依次为：生成数量、回收数量、解析出的候选交点数量
func (s *SwarmTraffic) LastStats() (spawned, despawned, points int) {
	return s.lastSpawned, s.lastDespawned, s.lastPoints
}
