package log

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	logFile *os.File
	logMux  sync.Mutex
)

// InitLog 初始化日志文件
// 目录不存在时自动创建；初始化失败时日志退化为标准错误输出
func InitLog(filename string) {
	logMux.Lock()
	defer logMux.Unlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return
	}

	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log file: %v\n", err)
		return
	}
	logFile = file
}

// WriteLog 写入一条带时间戳的日志
func WriteLog(msg string) {
	logMux.Lock()
	defer logMux.Unlock()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)
	if logFile != nil {
		logFile.WriteString(line)
	} else {
		fmt.Fprint(os.Stderr, line)
	}
}

// CloseLog 关闭日志文件
func CloseLog() {
	logMux.Lock()
	defer logMux.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// LogEnvironment 记录运行环境信息
func LogEnvironment() {
	WriteLog(fmt.Sprintf("Go Version: %s", runtime.Version()))
	WriteLog(fmt.Sprintf("OS: %s, Arch: %s", runtime.GOOS, runtime.GOARCH))
	WriteLog(fmt.Sprintf("CPU Cores: %d", runtime.NumCPU()))
}

// LogSwarmParameters 记录群体交通参数
func LogSwarmParameters(innerRadius, semiMajorAxis, semiMinorAxis float64, numberOfVehicles int, velocity float64) {
	WriteLog(fmt.Sprintf("内环半径: %.2f", innerRadius))
	WriteLog(fmt.Sprintf("外椭圆长半轴: %.2f, 短半轴: %.2f", semiMajorAxis, semiMinorAxis))
	WriteLog(fmt.Sprintf("目标车辆数: %d", numberOfVehicles))
	WriteLog(fmt.Sprintf("生成车辆巡航速度: %.2f", velocity))
}

// ConvertTimeStepToTime 将仿真时间（秒）格式化为时分秒
func ConvertTimeStepToTime(simTime float64) string {
	total := int(simTime)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
