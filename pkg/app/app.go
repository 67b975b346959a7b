// Package app 提供预览应用的核心包装器
//
// 该包把效果初始化逻辑从 main 包提取出来：构建编排器和渲染系统，
// 实现 ebiten.Game 接口，并把窗口焦点作为可见性信号喂给调度器。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/helios/pkg/config"
	"github.com/gonewx/helios/pkg/game"
	"github.com/gonewx/helios/pkg/sun"
	"github.com/gonewx/helios/pkg/systems"
	"github.com/gonewx/helios/pkg/utils"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

// 逻辑帧步长：ebiten 默认 60 TPS
const tickDelta = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Sun 太阳效果配置，nil 使用默认值
	Sun *config.SunConfig
	// DataManager 设置持久化后端，nil 则降级为内存模式
	DataManager *gdata.Manager
}

// App 实现 ebiten.Game 接口，同时作为编排器的宿主上下文
type App struct {
	orchestrator *sun.Orchestrator
	renderSystem *systems.RenderSystem
	settings     *game.SettingsManager

	verbose bool
	paused  bool

	statusMessage string
}

// NewApp 创建并初始化预览应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sunCfg := cfg.Sun
	if sunCfg == nil {
		sunCfg = config.DefaultSunConfig()
	}

	a := &App{verbose: cfg.Verbose}
	a.orchestrator = sun.New(sunCfg, a)
	a.renderSystem = systems.NewRenderSystem(a.orchestrator.EntityManager(), a.orchestrator.NoiseField())

	// 存档里的调参覆盖配置文件的初始值
	settings, err := game.NewSettingsManager(cfg.DataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	a.settings = settings
	if a.settings.HasSavedSettings() {
		s := a.settings.GetSettings()
		a.orchestrator.SetRotationSpeed(s.RotationSpeed)
		a.orchestrator.SurfaceTunables().Brightness = s.Brightness
		a.orchestrator.SurfaceTunables().ContrastPower = s.ContrastPower
		a.orchestrator.SetEruptionsEnabled(s.EruptionsEnabled)
		log.Printf("[App] Applied saved tuning")
	}

	log.Printf("[App] Initialized (verbose=%v)", cfg.Verbose)
	return a, nil
}

// CameraPosition 预览相机固定在 +Z 轴上看向原点
func (a *App) CameraPosition() utils.Vec3 {
	return utils.V3(0, 0, 10)
}

// Visible 把窗口焦点作为可见性信号：失焦时调度器暂停喷发
func (a *App) Visible() bool {
	return ebiten.IsFocused()
}

// Update 每 tick 推进一次效果
func (a *App) Update() error {
	if err := a.handleInput(); err != nil {
		return err
	}
	if !a.paused {
		a.orchestrator.Advance(tickDelta)
	}
	return nil
}

// handleInput 处理调参快捷键
func (a *App) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return fmt.Errorf("quit requested")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
		if a.paused {
			a.statusMessage = "PAUSED - Press P to resume"
		} else {
			a.statusMessage = "Resumed"
		}
	}

	// 手动触发一次喷发
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.orchestrator.SpawnEruption()
		a.statusMessage = fmt.Sprintf("Eruption spawned (%d active flares)", a.orchestrator.ActiveFlareCount())
	}

	// 喷发总开关
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		enabled := !a.orchestrator.EruptionsEnabled()
		a.orchestrator.SetEruptionsEnabled(enabled)
		a.settings.SetEruptionsEnabled(enabled)
		a.statusMessage = fmt.Sprintf("Eruptions enabled: %v", enabled)
	}

	// 数字键开关对应的日冕层
	for i := 0; i < a.orchestrator.CoronaCount() && i < 9; i++ {
		key := ebiten.Key(int(ebiten.Key1) + i)
		if inpututil.IsKeyJustPressed(key) {
			active := !a.orchestrator.CoronaActive(i)
			a.orchestrator.SetCoronaActive(i, active)
			a.statusMessage = fmt.Sprintf("Corona layer %d active: %v", i+1, active)
		}
	}

	// 旋转速度
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		speed := a.orchestrator.RotationSpeed() + 0.001
		a.orchestrator.SetRotationSpeed(speed)
		a.settings.SetRotationSpeed(speed)
		a.statusMessage = fmt.Sprintf("Rotation speed: %.4f", speed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		speed := a.orchestrator.RotationSpeed() - 0.001
		if speed < 0 {
			speed = 0
		}
		a.orchestrator.SetRotationSpeed(speed)
		a.settings.SetRotationSpeed(speed)
		a.statusMessage = fmt.Sprintf("Rotation speed: %.4f", speed)
	}

	// 亮度
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		t := a.orchestrator.SurfaceTunables()
		t.Brightness += 0.1
		a.settings.SetBrightness(t.Brightness)
		a.statusMessage = fmt.Sprintf("Brightness: %.1f", t.Brightness)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		t := a.orchestrator.SurfaceTunables()
		t.Brightness -= 0.1
		if t.Brightness < 0 {
			t.Brightness = 0
		}
		a.settings.SetBrightness(t.Brightness)
		a.statusMessage = fmt.Sprintf("Brightness: %.1f", t.Brightness)
	}

	// 对比度
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		t := a.orchestrator.SurfaceTunables()
		t.ContrastPower += 0.1
		a.settings.SetContrastPower(t.ContrastPower)
		a.statusMessage = fmt.Sprintf("Contrast: %.1f", t.ContrastPower)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		t := a.orchestrator.SurfaceTunables()
		t.ContrastPower -= 0.1
		if t.ContrastPower < 0.1 {
			t.ContrastPower = 0.1
		}
		a.settings.SetContrastPower(t.ContrastPower)
		a.statusMessage = fmt.Sprintf("Contrast: %.1f", t.ContrastPower)
	}

	// 保存当前调参
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := a.settings.Save(); err != nil {
			a.statusMessage = fmt.Sprintf("Save failed: %v", err)
		} else {
			a.statusMessage = "Settings saved"
		}
	}

	return nil
}

// Draw 绘制一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{6, 6, 12, 255})
	a.renderSystem.Draw(screen)
	a.drawUI(screen)
}

// drawUI 叠加调试信息
func (a *App) drawUI(screen *ebiten.Image) {
	t := a.orchestrator.SurfaceTunables()
	info := fmt.Sprintf("Flares: %d  Speed: %.4f  Brightness: %.1f  Contrast: %.1f  Eruptions: %v",
		a.orchestrator.ActiveFlareCount(), a.orchestrator.RotationSpeed(),
		t.Brightness, t.ContrastPower, a.orchestrator.EruptionsEnabled())
	ebitenutil.DebugPrintAt(screen, info, 10, 10)

	if a.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, a.statusMessage, 10, 30)
	}

	controls := []string{
		"Space = Eruption  E = Toggle eruptions  1-9 = Toggle corona layer  P = Pause",
		"Up/Down = Rotation speed  Left/Right = Brightness  [/] = Contrast  S = Save  Q = Quit",
	}
	y := screenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}

	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", screenWidth-80, 10)
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Orchestrator 返回编排器（供退出时拆除）
func (a *App) Orchestrator() *sun.Orchestrator {
	return a.orchestrator
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
