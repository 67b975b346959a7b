package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EffectSettings 可持久化的效果调参
// 这些是用户在预览工具里实时调节的值，跨启动保留；
// 效果层自身的运行状态（旋转累加器、耀斑列表等）从不持久化
type EffectSettings struct {
	RotationSpeed    float64 `yaml:"rotationSpeed"`    // 本体旋转速度
	Brightness       float64 `yaml:"brightness"`       // 表面整体亮度
	ContrastPower    float64 `yaml:"contrastPower"`    // 表面对比度幂
	EruptionsEnabled bool    `yaml:"eruptionsEnabled"` // 喷发总开关
}

// DefaultEffectSettings 返回默认调参（与 config.DefaultSunConfig 一致）
func DefaultEffectSettings() *EffectSettings {
	return &EffectSettings{
		RotationSpeed:    0.003,
		Brightness:       1.0,
		ContrastPower:    1.6,
		EruptionsEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责效果调参的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *EffectSettings // 当前调参
	loaded       bool            // 是否成功从存储加载过（区分存档值与默认值）
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "effect"
)

// NewSettingsManager 创建新的设置管理器实例
//
// gdataManager 为 nil 时进入降级模式：仅内存调参，不持久化
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultEffectSettings(),
	}

	// 尝试加载已保存的调参
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认调参
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载调参
// gdataManager 为 nil 或数据不存在时使用默认调参
func (sm *SettingsManager) Load() error {
	sm.loaded = false
	if sm.gdataManager == nil {
		sm.settings = DefaultEffectSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultEffectSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultEffectSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded EffectSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultEffectSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	sm.loaded = true
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// HasSavedSettings 当前调参是否来自已保存的存档
// 为 false 时调参是默认值，调用方不应让它覆盖显式配置
func (sm *SettingsManager) HasSavedSettings() bool {
	return sm.loaded
}

// Save 保存调参到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前调参
func (sm *SettingsManager) GetSettings() *EffectSettings {
	return sm.settings
}

// SetRotationSpeed 设置本体旋转速度
// 注意：仅修改内存中的调参，需调用 Save() 方法持久化
func (sm *SettingsManager) SetRotationSpeed(speed float64) {
	sm.settings.RotationSpeed = speed
}

// SetBrightness 设置表面整体亮度（钳制到 [0, 4]）
// 注意：仅修改内存中的调参，需调用 Save() 方法持久化
func (sm *SettingsManager) SetBrightness(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 4 {
		v = 4
	}
	sm.settings.Brightness = v
}

// SetContrastPower 设置表面对比度幂（非正值忽略）
// 注意：仅修改内存中的调参，需调用 Save() 方法持久化
func (sm *SettingsManager) SetContrastPower(v float64) {
	if v <= 0 {
		return
	}
	sm.settings.ContrastPower = v
}

// SetEruptionsEnabled 设置喷发总开关
// 注意：仅修改内存中的调参，需调用 Save() 方法持久化
func (sm *SettingsManager) SetEruptionsEnabled(enabled bool) {
	sm.settings.EruptionsEnabled = enabled
}
