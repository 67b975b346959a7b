// Package sun 对宿主渲染循环暴露太阳效果的单一入口
//
// Orchestrator 持有太阳本体、日冕层集合、存活耀斑列表和喷发调度器，
// 宿主每帧同步调用一次 Advance(deltaTime)，内部不阻塞、不起 goroutine。
package sun

import (
	"log"
	"math/rand"

	"github.com/gonewx/helios/internal/noise"
	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/config"
	"github.com/gonewx/helios/pkg/ecs"
	"github.com/gonewx/helios/pkg/entities"
	"github.com/gonewx/helios/pkg/game"
	"github.com/gonewx/helios/pkg/systems"
	"github.com/gonewx/helios/pkg/utils"
)

// Host 宿主渲染上下文提供的信息
// 相机位置驱动日冕的公告板化，可见性信号驱动喷发调度的暂停策略
type Host interface {
	// CameraPosition 当前相机在世界空间的位置
	CameraPosition() utils.Vec3
	// Visible 画面当前是否正被用户观察（如窗口是否聚焦）
	Visible() bool
}

// 存活耀斑的防御性上限
// 病态配置（极短间隔 × 大数量）下防止实体无界增长
const maxActiveFlares = 64

// Orchestrator 太阳效果编排器
//
// 所有状态都在内存中，进程重启后由配置重建，不做持久化。
type Orchestrator struct {
	cfg  *config.SunConfig
	host Host
	rng  *rand.Rand

	entityManager *ecs.EntityManager
	clock         *game.FrameClock
	field         *noise.Field

	surfaceSystem *systems.SurfaceSystem
	coronaSystem  *systems.CoronaSystem
	flareSystem   *systems.FlareSystem
	scheduler     *systems.EruptionScheduler

	bodyID    ecs.EntityID
	coronaIDs []ecs.EntityID
	flareIDs  []ecs.EntityID // 存活耀斑列表（唯一属主）

	eruptionsEnabled bool
}

// New 根据配置构建完整的太阳效果
// 配置先做一次 Normalize；相同 Seed 产生相同的噪声场和喷发序列
func New(cfg *config.SunConfig, host Host) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultSunConfig()
	}
	cfg.Normalize()

	o := &Orchestrator{
		cfg:              cfg,
		host:             host,
		rng:              rand.New(rand.NewSource(cfg.Seed)),
		entityManager:    ecs.NewEntityManager(),
		clock:            game.NewFrameClock(),
		field:            noise.NewField(cfg.Seed, cfg.Shader.FBMFrequency),
		eruptionsEnabled: cfg.SolarEruptions.Active,
	}

	o.surfaceSystem = systems.NewSurfaceSystem(o.entityManager)
	o.coronaSystem = systems.NewCoronaSystem(o.entityManager, host)
	o.flareSystem = systems.NewFlareSystem(o.entityManager)

	o.bodyID = entities.NewSunBodyEntity(o.entityManager, cfg)
	for i := range cfg.Corona {
		o.coronaIDs = append(o.coronaIDs, entities.NewCoronaEntity(o.entityManager, &cfg.Corona[i]))
	}

	o.scheduler = systems.NewEruptionScheduler(
		o.clock, &cfg.SolarEruptions, host, o.SpawnFlare, o.rng)
	o.scheduler.Start()

	log.Printf("[Orchestrator] Initialized: %d corona layer(s), eruptions=%v",
		len(o.coronaIDs), o.eruptionsEnabled)
	return o
}

// Advance 每帧推进入口，deltaTime 单位为秒
// 由宿主渲染循环同步调用；喷发定时器也在这里的帧时钟内触发
func (o *Orchestrator) Advance(deltaTime float64) {
	o.clock.Advance(deltaTime)
	o.surfaceSystem.Update(deltaTime)
	o.coronaSystem.Update(deltaTime)
	o.flareSystem.Update(deltaTime)
	o.reapFlares()
	o.entityManager.RemoveMarkedEntities()
}

// Stop 停止喷发调度（取消挂起定时器），用于宿主卸载效果时的拆除
func (o *Orchestrator) Stop() {
	o.scheduler.Stop()
}

// SpawnFlare 生成一个耀斑实体
//
// 喷发调度器的生成回调；全局禁用时是空操作（调度循环继续运行，
// 重新启用后下一个自然周期立即生效，无需重启）
func (o *Orchestrator) SpawnFlare(opts components.FlareOptions) {
	if !o.eruptionsEnabled {
		return
	}
	if len(o.flareIDs) >= maxActiveFlares {
		log.Printf("[Orchestrator] Active flare cap reached (%d), skipping spawn", maxActiveFlares)
		return
	}
	id, ok := entities.NewFlareEntity(o.entityManager, o.rng, o.cfg.Radius, opts)
	if !ok {
		return
	}
	o.flareIDs = append(o.flareIDs, id)
}

// SpawnEruption 手动触发一次喷发（预览工具的调试入口）
// 数量与参数的随机规则与自动调度完全一致
func (o *Orchestrator) SpawnEruption() {
	e := &o.cfg.SolarEruptions
	count := int(uniform(o.rng, e.MinCount, e.MaxCount))
	for i := 0; i < count; i++ {
		o.SpawnFlare(systems.GenerateRandomFlareOptions(o.rng, &e.FlareOptions))
	}
}

// reapFlares 把已销毁的耀斑移出存活列表
// 遍历快照、按标识匹配删除，同帧多个耀斑到期也不会漏删
func (o *Orchestrator) reapFlares() {
	alive := o.flareIDs[:0]
	for _, id := range o.flareIDs {
		flare, ok := ecs.GetComponent[*components.FlareComponent](o.entityManager, id)
		if !ok || flare.Destroyed {
			continue
		}
		alive = append(alive, id)
	}
	o.flareIDs = alive
}

// ---- 宿主 UI 调参接口 ----

// EntityManager 供渲染后端查询组件（只读约定）
func (o *Orchestrator) EntityManager() *ecs.EntityManager {
	return o.entityManager
}

// NoiseField 表面与耀斑着色共用的噪声场
func (o *Orchestrator) NoiseField() *noise.Field {
	return o.field
}

// Radius 本体包围球半径
func (o *Orchestrator) Radius() float64 {
	return o.cfg.Radius
}

// ActiveFlareCount 当前存活耀斑数量
func (o *Orchestrator) ActiveFlareCount() int {
	return len(o.flareIDs)
}

// FlareIDs 存活耀斑实体列表（渲染用，调用方不得修改）
func (o *Orchestrator) FlareIDs() []ecs.EntityID {
	return o.flareIDs
}

// BodyID 本体实体
func (o *Orchestrator) BodyID() ecs.EntityID {
	return o.bodyID
}

// CoronaIDs 日冕层实体列表
func (o *Orchestrator) CoronaIDs() []ecs.EntityID {
	return o.coronaIDs
}

// body 读取本体组件（实体由编排器自己创建，缺失视为编程错误）
func (o *Orchestrator) body() *components.SurfaceComponent {
	surface, _ := ecs.GetComponent[*components.SurfaceComponent](o.entityManager, o.bodyID)
	return surface
}

// RotationSpeed 本体旋转速度
func (o *Orchestrator) RotationSpeed() float64 {
	return o.body().Speed
}

// SetRotationSpeed 设置本体旋转速度
func (o *Orchestrator) SetRotationSpeed(speed float64) {
	o.body().Speed = speed
}

// SetRotationDirection 设置本体旋转方向（不做归一化，调用方负责）
func (o *Orchestrator) SetRotationDirection(dir utils.Vec3) {
	o.body().Direction = dir
}

// BodyRotation 本体当前旋转
func (o *Orchestrator) BodyRotation() utils.Vec3 {
	return o.body().Rotation
}

// SurfaceTunables 表面可调参数（指针返回，UI 可原地修改单个字段）
func (o *Orchestrator) SurfaceTunables() *components.SurfaceTunables {
	return &o.body().Tunables
}

// CoronaCount 日冕层数量
func (o *Orchestrator) CoronaCount() int {
	return len(o.coronaIDs)
}

// CoronaTunables 第 i 层日冕的可调参数，越界返回 nil
func (o *Orchestrator) CoronaTunables(i int) *components.CoronaTunables {
	if i < 0 || i >= len(o.coronaIDs) {
		return nil
	}
	corona, ok := ecs.GetComponent[*components.CoronaComponent](o.entityManager, o.coronaIDs[i])
	if !ok {
		return nil
	}
	return &corona.Tunables
}

// SetCoronaActive 开关第 i 层日冕（越界忽略）
func (o *Orchestrator) SetCoronaActive(i int, active bool) {
	if i < 0 || i >= len(o.coronaIDs) {
		return
	}
	if corona, ok := ecs.GetComponent[*components.CoronaComponent](o.entityManager, o.coronaIDs[i]); ok {
		corona.Active = active
	}
}

// CoronaActive 第 i 层日冕是否激活
func (o *Orchestrator) CoronaActive(i int) bool {
	if i < 0 || i >= len(o.coronaIDs) {
		return false
	}
	corona, ok := ecs.GetComponent[*components.CoronaComponent](o.entityManager, o.coronaIDs[i])
	return ok && corona.Active
}

// EruptionsEnabled 喷发总开关状态
func (o *Orchestrator) EruptionsEnabled() bool {
	return o.eruptionsEnabled
}

// SetEruptionsEnabled 设置喷发总开关
// 关闭不停止调度循环，重新开启在下一个自然周期生效
func (o *Orchestrator) SetEruptionsEnabled(enabled bool) {
	o.eruptionsEnabled = enabled
}

// SetEruptionCountRange 设置每次喷发的耀斑数量区间（max < min 时收拢为 min）
func (o *Orchestrator) SetEruptionCountRange(min, max float64) {
	if max < min {
		max = min
	}
	o.cfg.SolarEruptions.MinCount = min
	o.cfg.SolarEruptions.MaxCount = max
}

// SetEruptionIntervalRange 设置喷发间隔区间（毫秒，max < min 时收拢为 min）
func (o *Orchestrator) SetEruptionIntervalRange(min, max float64) {
	if max < min {
		max = min
	}
	o.cfg.SolarEruptions.MinInterval = min
	o.cfg.SolarEruptions.MaxInterval = max
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
