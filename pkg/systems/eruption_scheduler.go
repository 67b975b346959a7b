package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/config"
	"github.com/gonewx/helios/pkg/game"
)

// VisibilityProvider 宿主的"画面是否正被观察"信号
// 页面被切到后台时调度器只空转，不生成耀斑
type VisibilityProvider interface {
	Visible() bool
}

// 不可见时固定的复查延迟（毫秒）
const visibilityRecheckDelayMs = 1000

// EruptionScheduler 喷发调度器
//
// 状态机：idle → scheduled → fired → scheduled → …，随持有它的
// Orchestrator 一直循环；Stop 取消挂起的定时器并永久回到 idle。
//
// 每个周期：
//   - 宿主不可见 → 1000ms 后复查，不喷发（防止后台空跑时失控生成）
//   - 可见 → 取 count = floor(uniform(minCount, maxCount)) 个随机参数
//     耀斑交给 spawn 回调，再按 uniform(minInterval, maxInterval) 毫秒
//     安排下一个周期
//
// 定时原语通过 game.TimerService 注入，任意时刻最多一个挂起句柄
// （新定时器只在上一个触发或被取消后安排），测试可注入手动时钟。
type EruptionScheduler struct {
	timers     game.TimerService
	cfg        *config.EruptionConfig
	visibility VisibilityProvider
	spawn      func(components.FlareOptions)
	rng        *rand.Rand

	pending game.TimerHandle
	running bool
}

// NewEruptionScheduler 创建喷发调度器
// spawn 回调负责真正创建耀斑实体（全局禁用时由回调方空操作）
func NewEruptionScheduler(
	timers game.TimerService,
	cfg *config.EruptionConfig,
	visibility VisibilityProvider,
	spawn func(components.FlareOptions),
	rng *rand.Rand,
) *EruptionScheduler {
	return &EruptionScheduler{
		timers:     timers,
		cfg:        cfg,
		visibility: visibility,
		spawn:      spawn,
		rng:        rng,
	}
}

// Start 启动调度循环（幂等）
// 第一次喷发在一个随机间隔之后
func (s *EruptionScheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.reschedule(uniformRange(s.rng, s.cfg.MinInterval, s.cfg.MaxInterval))
	log.Printf("[EruptionScheduler] Started (interval %.0f-%.0fms, count %.0f-%.0f)",
		s.cfg.MinInterval, s.cfg.MaxInterval, s.cfg.MinCount, s.cfg.MaxCount)
}

// Stop 停止调度循环并取消挂起的定时器
// 停止后不会再有任何耀斑生成；永久回到 idle
func (s *EruptionScheduler) Stop() {
	s.running = false
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	log.Printf("[EruptionScheduler] Stopped")
}

// Running 调度循环是否在运行
func (s *EruptionScheduler) Running() bool {
	return s.running
}

// reschedule 安排下一个周期
// 调用前提：当前没有挂起的定时器（触发或取消后才会调用）
func (s *EruptionScheduler) reschedule(delayMs float64) {
	s.pending = s.timers.Schedule(delayMs, s.fire)
}

// fire 单个调度周期
func (s *EruptionScheduler) fire() {
	s.pending = nil
	if !s.running {
		return
	}

	// 宿主不可见：不喷发，固定延迟后复查
	if s.visibility != nil && !s.visibility.Visible() {
		s.reschedule(visibilityRecheckDelayMs)
		return
	}

	count := int(uniformRange(s.rng, s.cfg.MinCount, s.cfg.MaxCount))
	for i := 0; i < count; i++ {
		s.spawn(GenerateRandomFlareOptions(s.rng, &s.cfg.FlareOptions))
	}

	s.reschedule(uniformRange(s.rng, s.cfg.MinInterval, s.cfg.MaxInterval))
}

// uniformRange 在 [min, max) 内均匀取值
// max <= min 时视为零宽区间，精确返回 min
func uniformRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// GenerateRandomFlareOptions 按配置区间随机生成一组耀斑参数
// 整数字段在区间内均匀取值后向下取整；min == max 时精确返回该值
func GenerateRandomFlareOptions(rng *rand.Rand, r *config.FlareRangeConfig) components.FlareOptions {
	return components.FlareOptions{
		Size:         uniformRange(rng, r.MinSize, r.MaxSize),
		Lifetime:     uniformRange(rng, r.MinLifetime, r.MaxLifetime),
		PlasmaTrails: int(uniformRange(rng, float64(r.MinPlasmaTrails), float64(r.MaxPlasmaTrails))),
		FlareCount:   int(uniformRange(rng, float64(r.MinFlareCount), float64(r.MaxFlareCount))),
		Turbulence:   uniformRange(rng, r.MinTurbulence, r.MaxTurbulence),
		Shader: components.FlareShaderOptions{
			InnerColor:    r.Shader.InnerColor.ToColor(),
			OuterColor:    r.Shader.OuterColor.ToColor(),
			FBMFrequency:  r.Shader.FBMFrequency,
			ContrastPower: r.Shader.ContrastPower,
			FBMScale:      r.Shader.FBMScale,
			FBMOffset:     r.Shader.FBMOffset,
		},
	}
}
